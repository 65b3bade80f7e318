package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"gestaotemplate/internal/apperr"

	"github.com/gabriel-vasile/mimetype"
	playgroundvalidator "github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindDecimal
	KindJSON
	KindFile
)

// DefaultImageMaxKB is the upload cap for image fields.
const DefaultImageMaxKB = 2048

var imageMimes = []string{"jpeg", "png", "gif", "webp"}

var mimeByExt = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
}

// Field is one typed constraint of an entity payload. Name is both the
// payload key and, except for files, the column name.
type Field struct {
	Name       string
	Kind       Kind
	IsRequired bool
	IsNullable bool
	// Rules is a go-playground/validator tag checked against the coerced value.
	Rules   string
	Default interface{}

	// File fields only. Column is where the storage key is saved.
	Column string
	MaxKB  int64
	Mimes  []string

	// ExistsIn names a store-scoped table the value must reference.
	ExistsIn string
}

func (f Field) Required() Field {
	f.IsRequired = true
	return f
}

func (f Field) Nullable() Field {
	f.IsNullable = true
	return f
}

func (f Field) WithDefault(v interface{}) Field {
	f.Default = v
	return f
}

func (f Field) Exists(table string) Field {
	f.ExistsIn = table
	return f
}

func Str(name string, max int) Field {
	return Field{Name: name, Kind: KindString, Rules: fmt.Sprintf("max=%d", max)}
}

func Text(name string) Field {
	return Field{Name: name, Kind: KindString}
}

func URL(name string) Field {
	return Field{Name: name, Kind: KindString, Rules: "url,max=255"}
}

func Color(name string) Field {
	return Field{Name: name, Kind: KindString, Rules: "hexcolor"}
}

func Enum(name string, values ...string) Field {
	return Field{Name: name, Kind: KindString, Rules: "oneof=" + strings.Join(values, " ")}
}

// FK is a UUID reference to another store-scoped table.
func FK(name, table string) Field {
	return Field{Name: name, Kind: KindString, Rules: "uuid", ExistsIn: table}
}

func Bool(name string) Field {
	return Field{Name: name, Kind: KindBool}
}

func Int(name string, min, max int) Field {
	return Field{Name: name, Kind: KindInt, Rules: fmt.Sprintf("min=%d,max=%d", min, max)}
}

func Decimal(name string, min, max float64) Field {
	return Field{Name: name, Kind: KindDecimal, Rules: fmt.Sprintf("min=%g,max=%g", min, max)}
}

func JSON(name string) Field {
	return Field{Name: name, Kind: KindJSON}
}

// Image is an uploaded image stored under column <name>_path.
func Image(name string) Field {
	return Field{
		Name:   name,
		Kind:   KindFile,
		Column: name + "_path",
		MaxKB:  DefaultImageMaxKB,
		Mimes:  imageMimes,
	}
}

type Schema []Field

// FileColumns returns the columns holding storage keys.
func (s Schema) FileColumns() []string {
	var cols []string
	for _, f := range s {
		if f.Kind == KindFile {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// Input is a raw payload: decoded JSON or multipart form values, plus files.
type Input struct {
	Values map[string]interface{}
	Files  map[string]*multipart.FileHeader
}

// File is an upload that passed validation, already read into memory.
// Extension comes from the detected content type, never from Filename.
type File struct {
	Field       Field
	Filename    string
	Extension   string
	ContentType string
	Content     []byte
}

type Result struct {
	Values map[string]interface{}
	Files  []File
}

// Validate checks in against the schema. When partial is set only supplied
// fields are checked, and required only rejects empty values. Nothing is
// written anywhere; a non-empty FieldErrors means the payload must be
// rejected as a whole.
func (s Schema) Validate(in Input, partial bool) (*Result, apperr.FieldErrors) {
	res := &Result{Values: map[string]interface{}{}}
	errs := apperr.FieldErrors{}

	for _, f := range s {
		if f.Kind == KindFile {
			s.validateFile(f, in, partial, res, errs)
			continue
		}

		raw, present := in.Values[f.Name]
		if !present {
			if f.IsRequired && !partial {
				errs.Add(f.Name, msgRequired(f.Name))
			} else if !partial && f.Default != nil {
				res.Values[f.Name] = f.Default
			}
			continue
		}

		value, msg := coerce(f, raw)
		if msg != "" {
			errs.Add(f.Name, msg)
			continue
		}

		if value == nil {
			switch {
			case f.IsRequired:
				errs.Add(f.Name, msgRequired(f.Name))
			case f.IsNullable:
				res.Values[f.Name] = nil
			case f.Kind == KindString:
				// Non-nullable strings store "", which must still pass the rules.
				if f.checkRules("", errs) {
					res.Values[f.Name] = ""
				}
			default:
				errs.Add(f.Name, typeMessage(f))
			}
			continue
		}

		if f.checkRules(value, errs) {
			res.Values[f.Name] = value
		}
	}

	return res, errs
}

// checkRules runs the field's rule tag against value, recording failures.
func (f Field) checkRules(value interface{}, errs apperr.FieldErrors) bool {
	if f.Rules == "" {
		return true
	}
	err := fieldValidator.Var(value, f.Rules)
	if err == nil {
		return true
	}
	var ves playgroundvalidator.ValidationErrors
	if errors.As(err, &ves) {
		for _, fe := range ves {
			errs.Add(f.Name, message(f.Name, fe))
		}
		return false
	}
	errs.Add(f.Name, fmt.Sprintf("O campo %s é inválido.", attribute(f.Name)))
	return false
}

func (s Schema) validateFile(f Field, in Input, partial bool, res *Result, errs apperr.FieldErrors) {
	fh := in.Files[f.Name]
	if fh == nil {
		if raw, ok := in.Values[f.Name]; ok && raw != nil && raw != "" {
			errs.Add(f.Name, msgType(f.Name, "um arquivo"))
			return
		}
		if f.IsRequired && !partial {
			errs.Add(f.Name, msgRequired(f.Name))
		}
		return
	}

	maxBytes := f.MaxKB * 1024
	if fh.Size > maxBytes {
		errs.Add(f.Name, fmt.Sprintf("O campo %s não pode ser maior que %d kilobytes.", attribute(f.Name), f.MaxKB))
		return
	}

	src, err := fh.Open()
	if err != nil {
		errs.Add(f.Name, fmt.Sprintf("O campo %s falhou ao ser enviado.", attribute(f.Name)))
		return
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil || int64(len(content)) > maxBytes {
		errs.Add(f.Name, fmt.Sprintf("O campo %s não pode ser maior que %d kilobytes.", attribute(f.Name), f.MaxKB))
		return
	}

	mt := mimetype.Detect(content)
	if !allowedMime(mt, f.Mimes) {
		errs.Add(f.Name, fmt.Sprintf("O campo %s deve ser um arquivo do tipo: %s.", attribute(f.Name), strings.Join(f.Mimes, ", ")))
		return
	}

	res.Files = append(res.Files, File{
		Field:       f,
		Filename:    filepath.Base(fh.Filename),
		Extension:   strings.TrimPrefix(mt.Extension(), "."),
		ContentType: mt.String(),
		Content:     content,
	})
}

func allowedMime(mt *mimetype.MIME, allowed []string) bool {
	for _, ext := range allowed {
		if want, ok := mimeByExt[ext]; ok && mt.Is(want) {
			return true
		}
	}
	return false
}

func typeMessage(f Field) string {
	switch f.Kind {
	case KindBool:
		return msgType(f.Name, "verdadeiro ou falso")
	case KindInt:
		return msgType(f.Name, "um número inteiro")
	case KindDecimal:
		return msgType(f.Name, "um número")
	case KindJSON:
		return msgType(f.Name, "um JSON válido")
	default:
		return msgType(f.Name, "um texto")
	}
}

// coerce converts a raw JSON or form value to the Go type stored for the
// field kind. Strings are trimmed and empty strings become nil.
func coerce(f Field, raw interface{}) (interface{}, string) {
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, ""
		}
		raw = s
	}
	if raw == nil {
		return nil, ""
	}

	switch f.Kind {
	case KindString:
		if s, ok := raw.(string); ok {
			return s, ""
		}
	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v, ""
		case string:
			switch strings.ToLower(v) {
			case "1", "true", "on", "yes":
				return true, ""
			case "0", "false", "off", "no":
				return false, ""
			}
		case json.Number:
			switch v.String() {
			case "1":
				return true, ""
			case "0":
				return false, ""
			}
		}
	case KindInt:
		var s string
		switch v := raw.(type) {
		case json.Number:
			s = v.String()
		case string:
			s = v
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, ""
		}
	case KindDecimal:
		var s string
		switch v := raw.(type) {
		case json.Number:
			s = v.String()
		case string:
			s = strings.Replace(v, ",", ".", 1)
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, ""
		}
	case KindJSON:
		switch v := raw.(type) {
		case map[string]interface{}, []interface{}:
			b, err := json.Marshal(v)
			if err == nil {
				return datatypes.JSON(b), ""
			}
		case string:
			if json.Valid([]byte(v)) {
				return datatypes.JSON(v), ""
			}
		}
	}
	return nil, typeMessage(f)
}

// ValidateValue checks a single value against a rule tag, e.g. a query
// parameter.
func ValidateValue(name string, value interface{}, rules string) apperr.FieldErrors {
	errs := apperr.FieldErrors{}
	if err := fieldValidator.Var(value, rules); err != nil {
		var ves playgroundvalidator.ValidationErrors
		if errors.As(err, &ves) {
			for _, fe := range ves {
				errs.Add(name, message(name, fe))
			}
		} else {
			errs.Add(name, fmt.Sprintf("O campo %s é inválido.", attribute(name)))
		}
	}
	return errs
}
