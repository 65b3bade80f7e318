// Package resources declares the template-configuration entities exposed by
// the API: route name, storage folder and payload schema of each one.
package resources

import (
	"gestaotemplate/internal/api/validator"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/services"

	"gorm.io/gorm/schema"
)

// Definition describes one store-scoped entity.
type Definition struct {
	// Name is the route segment, e.g. "banners-estaticos".
	Name string
	// Folder is the per-store storage folder for uploads.
	Folder string
	// Templated entities are additionally filtered by template_id.
	Templated bool
	Schema    validator.Schema
	// Model is a pointer to a zero value of the gorm model.
	Model interface{}
}

// HasFiles reports whether the entity stores uploads.
func (d Definition) HasFiles() bool {
	return len(d.Schema.FileColumns()) > 0
}

// Table is the table name of the entity's model.
func (d Definition) Table() string {
	return d.Model.(schema.Tabler).TableName()
}

// ServiceConfig derives the service settings of the entity.
func (d Definition) ServiceConfig() services.ScopedConfig {
	cfg := services.ScopedConfig{
		Folder:      d.Folder,
		Templated:   d.Templated,
		FileColumns: d.Schema.FileColumns(),
	}
	for _, f := range d.Schema {
		if f.ExistsIn != "" {
			cfg.References = append(cfg.References, services.Reference{Column: f.Name, Table: f.ExistsIn})
		}
	}
	return cfg
}

var (
	Anuncio = Definition{
		Name: "anuncios", Folder: "anuncios", Templated: true, Model: &models.Anuncio{},
		Schema: validator.Schema{
			validator.Str("texto", 255).Required(),
			validator.URL("link").Nullable(),
			validator.Color("cor_fundo"),
			validator.Color("cor_texto"),
			validator.Bool("exibir"),
		},
	}

	BannerEstatico = Definition{
		Name: "banners-estaticos", Folder: "bannerEstatico", Templated: true, Model: &models.BannerEstatico{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.URL("link").Nullable(),
			validator.Image("imagem").Required(),
			validator.Int("ordem", 0, 100),
			validator.Bool("exibir"),
		},
	}

	BannerPromocional = Definition{
		Name: "banners-promocionais", Folder: "bannerPromocional", Templated: true, Model: &models.BannerPromocional{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.Str("subtitulo", 255).Nullable(),
			validator.URL("link").Nullable(),
			validator.Image("imagem").Required(),
			validator.Enum("posicao", "topo", "meio", "rodape").WithDefault("topo"),
			validator.Bool("exibir"),
		},
	}

	BannerRotativo = Definition{
		Name: "banners-rotativos", Folder: "bannerRotativo", Templated: true, Model: &models.BannerRotativo{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.URL("link").Nullable(),
			validator.Image("imagem_desktop").Required(),
			validator.Image("imagem_mobile").Nullable(),
			validator.Int("ordem", 0, 100),
			validator.Int("tempo_transicao", 1, 30).WithDefault(int64(5)),
			validator.Bool("exibir"),
		},
	}

	BannersCategoriasGt = Definition{
		Name: "banners-categorias", Folder: "bannersCategorias", Templated: true, Model: &models.BannersCategoriasGt{},
		Schema: validator.Schema{
			validator.FK("categoria_id", "categorias").Required(),
			validator.Str("titulo", 255).Nullable(),
			validator.Image("imagem").Required(),
			validator.Bool("exibir"),
		},
	}

	Cabecalho = Definition{
		Name: "cabecalhos", Folder: "cabecalho", Templated: true, Model: &models.Cabecalho{},
		Schema: validator.Schema{
			validator.JSON("layout_config").Required(),
			validator.Image("logo").Nullable(),
			validator.Color("cor_fundo"),
			validator.Bool("fixo"),
			validator.Bool("exibir_busca").WithDefault(true),
		},
	}

	CarrinhoGt = Definition{
		Name: "carrinhos", Folder: "carrinho", Templated: true, Model: &models.CarrinhoGt{},
		Schema: validator.Schema{
			validator.JSON("layout_config").Required(),
			validator.Bool("exibir_frete").WithDefault(true),
			validator.Bool("exibir_cupom").WithDefault(true),
			validator.Str("mensagem", 500).Nullable(),
		},
	}

	CheckoutGt = Definition{
		Name: "checkouts", Folder: "checkout", Templated: true, Model: &models.CheckoutGt{},
		Schema: validator.Schema{
			validator.JSON("layout_config").Required(),
			validator.Bool("exibir_resumo").WithDefault(true),
			validator.Color("cor_botao"),
			validator.Str("texto_botao", 50),
		},
	}

	Depoimento = Definition{
		Name: "depoimentos", Folder: "depoimentos", Templated: true, Model: &models.Depoimento{},
		Schema: validator.Schema{
			validator.Str("nome", 100).Required(),
			validator.Str("texto", 1000).Required(),
			validator.Int("nota", 1, 5).Required(),
			validator.Image("foto").Nullable(),
			validator.Bool("exibir"),
		},
	}

	FavoritosGt = Definition{
		Name: "favoritos", Folder: "favoritos", Templated: true, Model: &models.FavoritosGt{},
		Schema: validator.Schema{
			validator.Enum("icone", "coracao", "estrela").WithDefault("coracao"),
			validator.Color("cor_icone"),
			validator.Bool("exibir"),
		},
	}

	ImagensGt = Definition{
		Name: "imagens", Folder: "imagens", Templated: true, Model: &models.ImagensGt{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Nullable(),
			validator.Image("imagem").Required(),
			validator.URL("link").Nullable(),
			validator.Int("largura", 1, 4000).Nullable(),
			validator.Int("altura", 1, 4000).Nullable(),
			validator.Bool("exibir"),
		},
	}

	InfoFretePagamento = Definition{
		Name: "info-frete-pagamento", Folder: "infoFretePagamento", Templated: true, Model: &models.InfoFretePagamento{},
		Schema: validator.Schema{
			validator.Decimal("frete_gratis_acima", 0, 999999).Nullable(),
			validator.Int("parcelas_sem_juros", 1, 24).Nullable(),
			validator.Decimal("desconto_pix", 0, 100).Nullable(),
			validator.Str("texto", 255).Nullable(),
			validator.Bool("exibir"),
		},
	}

	MarcaGt = Definition{
		Name: "marcas", Folder: "marcas", Templated: true, Model: &models.MarcaGt{},
		Schema: validator.Schema{
			validator.Str("nome", 100).Required(),
			validator.Image("logo").Required(),
			validator.URL("link").Nullable(),
			validator.Int("ordem", 0, 100),
			validator.Bool("exibir"),
		},
	}

	MensagemInstitucional = Definition{
		Name: "mensagens-institucionais", Folder: "mensagemInstitucional", Templated: true, Model: &models.MensagemInstitucional{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.Str("mensagem", 2000).Required(),
			validator.Image("icone").Nullable(),
			validator.Bool("exibir"),
		},
	}

	MostrarProduto = Definition{
		Name: "mostrar-produtos", Folder: "mostrarProduto", Templated: true, Model: &models.MostrarProduto{},
		Schema: validator.Schema{
			validator.FK("produto_id", "produtos").Required(),
			validator.Str("titulo", 255).Nullable(),
			validator.Int("ordem", 0, 100),
			validator.Bool("exibir"),
		},
	}

	Newsletter = Definition{
		Name: "newsletters", Folder: "newsletter", Templated: true, Model: &models.Newsletter{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.Str("descricao", 500).Nullable(),
			validator.Str("texto_botao", 50),
			validator.Color("cor_fundo"),
			validator.Image("imagem").Nullable(),
			validator.Bool("exibir"),
		},
	}

	PopupPromocional = Definition{
		Name: "popups-promocionais", Folder: "popupPromocional", Templated: true, Model: &models.PopupPromocional{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.Str("texto", 1000).Nullable(),
			validator.Image("imagem").Nullable(),
			validator.URL("link").Nullable(),
			validator.Str("cupom", 50).Nullable(),
			validator.Int("atraso_segundos", 0, 120),
			validator.Bool("exibir"),
		},
	}

	ProdutosEmDestaque = Definition{
		Name: "produtos-em-destaque", Folder: "produtosEmDestaque", Templated: true, Model: &models.ProdutosEmDestaque{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.Int("quantidade", 1, 50).WithDefault(int64(8)),
			validator.Int("colunas", 2, 6).WithDefault(int64(4)),
			validator.FK("categoria_id", "categorias").Nullable(),
			validator.Bool("exibir"),
		},
	}

	ProdutosEmOferta = Definition{
		Name: "produtos-em-oferta", Folder: "produtosEmOferta", Templated: true, Model: &models.ProdutosEmOferta{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.Int("quantidade", 1, 50).WithDefault(int64(8)),
			validator.Int("colunas", 2, 6).WithDefault(int64(4)),
			validator.Enum("ordenacao", "menor_preco", "maior_desconto", "recentes").WithDefault("maior_desconto"),
			validator.Bool("exibir"),
		},
	}

	ProdutosNovos = Definition{
		Name: "produtos-novos", Folder: "produtosNovos", Templated: true, Model: &models.ProdutosNovos{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.Int("quantidade", 1, 50).WithDefault(int64(8)),
			validator.Int("colunas", 2, 6).WithDefault(int64(4)),
			validator.Int("dias_novidade", 1, 365).WithDefault(int64(30)),
			validator.Bool("exibir"),
		},
	}

	TextosGt = Definition{
		Name: "textos", Folder: "textos", Templated: true, Model: &models.TextosGt{},
		Schema: validator.Schema{
			validator.Str("chave", 100).Required(),
			validator.Str("conteudo", 5000).Required(),
			validator.Bool("exibir"),
		},
	}

	Video = Definition{
		Name: "videos", Folder: "videos", Templated: true, Model: &models.Video{},
		Schema: validator.Schema{
			validator.Str("titulo", 255).Required(),
			validator.URL("url").Required(),
			validator.Image("thumbnail").Nullable(),
			validator.Bool("autoplay"),
			validator.Bool("exibir"),
		},
	}

	Idioma = Definition{
		Name: "idiomas", Folder: "idiomas", Templated: false, Model: &models.Idioma{},
		Schema: validator.Schema{
			validator.Enum("codigo", "pt-BR", "en-US", "es-ES").Required(),
			validator.Bool("padrao"),
			validator.Bool("ativo").WithDefault(true),
		},
	}

	Tarefa = validator.Schema{
		validator.Str("titulo", 255).Required(),
		validator.Text("descricao").Nullable(),
		validator.Enum("status", string(models.TarefaPending), string(models.TarefaInProgress), string(models.TarefaDone)).
			WithDefault(string(models.TarefaPending)),
	}
)

// Tables lists the table of every store-scoped entity.
func Tables() []string {
	all := All()
	tables := make([]string, 0, len(all))
	for _, d := range all {
		tables = append(tables, d.Table())
	}
	return tables
}

// All returns every store-scoped entity definition.
func All() []Definition {
	return []Definition{
		Anuncio,
		BannerEstatico,
		BannerPromocional,
		BannerRotativo,
		BannersCategoriasGt,
		Cabecalho,
		CarrinhoGt,
		CheckoutGt,
		Depoimento,
		FavoritosGt,
		ImagensGt,
		InfoFretePagamento,
		MarcaGt,
		MensagemInstitucional,
		MostrarProduto,
		Newsletter,
		PopupPromocional,
		ProdutosEmDestaque,
		ProdutosEmOferta,
		ProdutosNovos,
		TextosGt,
		Video,
		Idioma,
	}
}

// SweepTargets lists the entities with uploads for the orphan sweeper.
func SweepTargets() []services.SweepTarget {
	var targets []services.SweepTarget
	for _, def := range All() {
		if !def.HasFiles() {
			continue
		}
		targets = append(targets, services.SweepTarget{
			Table:   def.Table(),
			Folder:  def.Folder,
			Columns: def.Schema.FileColumns(),
		})
	}
	return targets
}
