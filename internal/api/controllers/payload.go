package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"gestaotemplate/internal/api/validator"

	"github.com/labstack/echo/v4"
)

// ReadInput decodes a JSON, urlencoded or multipart body into a schema
// Input. Numbers in JSON bodies are kept as json.Number.
func ReadInput(ctx echo.Context) (validator.Input, error) {
	in := validator.Input{
		Values: map[string]interface{}{},
		Files:  map[string]*multipart.FileHeader{},
	}

	req := ctx.Request()
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(req.Header.Get(echo.HeaderContentType), ";")[0]))

	switch contentType {
	case echo.MIMEMultipartForm:
		form, err := ctx.MultipartForm()
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "Formulário inválido")
		}
		for name, values := range form.Value {
			if len(values) > 0 {
				in.Values[name] = values[0]
			}
		}
		for name, files := range form.File {
			if len(files) > 0 {
				in.Files[name] = files[0]
			}
		}
	case echo.MIMEApplicationForm:
		params, err := ctx.FormParams()
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "Formulário inválido")
		}
		for name, values := range params {
			if len(values) > 0 {
				in.Values[name] = values[0]
			}
		}
	default:
		if req.Body == nil {
			return in, nil
		}
		dec := json.NewDecoder(req.Body)
		dec.UseNumber()
		var body map[string]interface{}
		if err := dec.Decode(&body); err != nil {
			if errors.Is(err, io.EOF) {
				return in, nil
			}
			return in, echo.NewHTTPError(http.StatusBadRequest, "JSON inválido")
		}
		for k, v := range body {
			in.Values[k] = v
		}
	}

	// Scope columns always come from the session and the route.
	for _, k := range []string{"id", "loja_id", "template_id"} {
		delete(in.Values, k)
	}
	return in, nil
}
