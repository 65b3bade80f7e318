package registry

import (
	"github.com/labstack/echo/v4"

	"gestaotemplate/internal/api/controllers"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/resources"
	"gestaotemplate/internal/services"

	"gorm.io/gorm"
)

// 📝 RegisterCRUDRoutes registers the store-scoped CRUD routes of every
// template-configuration entity on g, which must already require an
// authenticated caller with a store.
//
// Each entity gets, with {template_id} omitted for idiomas:
//
//	GET    /{resource}/{template_id}
//	POST   /{resource}/{template_id}
//	GET    /{resource}/{template_id}/{id}
//	PATCH  /{resource}/{template_id}/{id} (also PUT)
//	DELETE /{resource}/{template_id}/{id}
func RegisterCRUDRoutes(g *echo.Group, db *gorm.DB, storage services.Storage) {
	register[models.Anuncio](g, db, storage, resources.Anuncio)
	register[models.BannerEstatico](g, db, storage, resources.BannerEstatico)
	register[models.BannerPromocional](g, db, storage, resources.BannerPromocional)
	register[models.BannerRotativo](g, db, storage, resources.BannerRotativo)
	register[models.BannersCategoriasGt](g, db, storage, resources.BannersCategoriasGt)
	register[models.Cabecalho](g, db, storage, resources.Cabecalho)
	register[models.CarrinhoGt](g, db, storage, resources.CarrinhoGt)
	register[models.CheckoutGt](g, db, storage, resources.CheckoutGt)
	register[models.Depoimento](g, db, storage, resources.Depoimento)
	register[models.FavoritosGt](g, db, storage, resources.FavoritosGt)
	register[models.ImagensGt](g, db, storage, resources.ImagensGt)
	register[models.InfoFretePagamento](g, db, storage, resources.InfoFretePagamento)
	register[models.MarcaGt](g, db, storage, resources.MarcaGt)
	register[models.MensagemInstitucional](g, db, storage, resources.MensagemInstitucional)
	register[models.MostrarProduto](g, db, storage, resources.MostrarProduto)
	register[models.Newsletter](g, db, storage, resources.Newsletter)
	register[models.PopupPromocional](g, db, storage, resources.PopupPromocional)
	register[models.ProdutosEmDestaque](g, db, storage, resources.ProdutosEmDestaque)
	register[models.ProdutosEmOferta](g, db, storage, resources.ProdutosEmOferta)
	register[models.ProdutosNovos](g, db, storage, resources.ProdutosNovos)
	register[models.TextosGt](g, db, storage, resources.TextosGt)
	register[models.Video](g, db, storage, resources.Video)
	register[models.Idioma](g, db, storage, resources.Idioma)
}

func register[T any](g *echo.Group, db *gorm.DB, storage services.Storage, def resources.Definition) {
	service := services.NewScopedService[T](db, storage, def.ServiceConfig())
	controller := controllers.NewResourceController[T](service, def.Schema, storage, def.Templated)
	controller.RegisterRoutes(g, "/"+def.Name)
}
