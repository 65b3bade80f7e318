package models

import (
	"gorm.io/datatypes"
)

// Template-configuration entities. JSON names match column names so that
// validated payload maps can be applied with Updates directly. File fields
// hold storage keys; they are rewritten to public URLs on the way out.

type Anuncio struct {
	Scoped
	Texto    string  `gorm:"size:255;not null" json:"texto"`
	Link     *string `gorm:"size:255" json:"link"`
	CorFundo string  `gorm:"size:7" json:"cor_fundo"`
	CorTexto string  `gorm:"size:7" json:"cor_texto"`
	Exibir   bool    `gorm:"not null;default:false" json:"exibir"`
}

func (Anuncio) TableName() string { return "anuncios" }

type BannerEstatico struct {
	Scoped
	Titulo     string  `gorm:"size:255;not null" json:"titulo"`
	Link       *string `gorm:"size:255" json:"link"`
	ImagemPath string  `gorm:"size:255;not null" json:"imagem_path"`
	Ordem      int     `gorm:"not null;default:0" json:"ordem"`
	Exibir     bool    `gorm:"not null;default:false" json:"exibir"`
}

func (BannerEstatico) TableName() string { return "banners_estaticos" }

type BannerPromocional struct {
	Scoped
	Titulo     string  `gorm:"size:255;not null" json:"titulo"`
	Subtitulo  *string `gorm:"size:255" json:"subtitulo"`
	Link       *string `gorm:"size:255" json:"link"`
	ImagemPath string  `gorm:"size:255;not null" json:"imagem_path"`
	Posicao    string  `gorm:"size:10;not null;default:'topo'" json:"posicao"`
	Exibir     bool    `gorm:"not null;default:false" json:"exibir"`
}

func (BannerPromocional) TableName() string { return "banners_promocionais" }

type BannerRotativo struct {
	Scoped
	Titulo            string  `gorm:"size:255;not null" json:"titulo"`
	Link              *string `gorm:"size:255" json:"link"`
	ImagemDesktopPath string  `gorm:"size:255;not null" json:"imagem_desktop_path"`
	ImagemMobilePath  *string `gorm:"size:255" json:"imagem_mobile_path"`
	Ordem             int     `gorm:"not null;default:0" json:"ordem"`
	TempoTransicao    int     `gorm:"not null;default:5" json:"tempo_transicao"`
	Exibir            bool    `gorm:"not null;default:false" json:"exibir"`
}

func (BannerRotativo) TableName() string { return "banners_rotativos" }

type BannersCategoriasGt struct {
	Scoped
	CategoriaID string  `gorm:"size:36;not null;index" json:"categoria_id"`
	Titulo      *string `gorm:"size:255" json:"titulo"`
	ImagemPath  string  `gorm:"size:255;not null" json:"imagem_path"`
	Exibir      bool    `gorm:"not null;default:false" json:"exibir"`
}

func (BannersCategoriasGt) TableName() string { return "banners_categorias_gt" }

type Cabecalho struct {
	Scoped
	LayoutConfig datatypes.JSON `json:"layout_config"`
	LogoPath     *string        `gorm:"size:255" json:"logo_path"`
	CorFundo     string         `gorm:"size:7" json:"cor_fundo"`
	Fixo         bool           `gorm:"not null;default:false" json:"fixo"`
	ExibirBusca  bool           `gorm:"not null" json:"exibir_busca"`
}

func (Cabecalho) TableName() string { return "cabecalhos" }

type CarrinhoGt struct {
	Scoped
	LayoutConfig datatypes.JSON `json:"layout_config"`
	ExibirFrete  bool           `gorm:"not null" json:"exibir_frete"`
	ExibirCupom  bool           `gorm:"not null" json:"exibir_cupom"`
	Mensagem     *string        `gorm:"size:500" json:"mensagem"`
}

func (CarrinhoGt) TableName() string { return "carrinho_gt" }

type CheckoutGt struct {
	Scoped
	LayoutConfig datatypes.JSON `json:"layout_config"`
	ExibirResumo bool           `gorm:"not null" json:"exibir_resumo"`
	CorBotao     string         `gorm:"size:7" json:"cor_botao"`
	TextoBotao   string         `gorm:"size:50" json:"texto_botao"`
}

func (CheckoutGt) TableName() string { return "checkout_gt" }

type Depoimento struct {
	Scoped
	Nome     string  `gorm:"size:100;not null" json:"nome"`
	Texto    string  `gorm:"type:text;not null" json:"texto"`
	Nota     int     `gorm:"not null" json:"nota"`
	FotoPath *string `gorm:"size:255" json:"foto_path"`
	Exibir   bool    `gorm:"not null;default:false" json:"exibir"`
}

func (Depoimento) TableName() string { return "depoimentos" }

type FavoritosGt struct {
	Scoped
	Icone    string `gorm:"size:20;not null;default:'coracao'" json:"icone"`
	CorIcone string `gorm:"size:7" json:"cor_icone"`
	Exibir   bool   `gorm:"not null;default:false" json:"exibir"`
}

func (FavoritosGt) TableName() string { return "favoritos_gt" }

type ImagensGt struct {
	Scoped
	Titulo     *string `gorm:"size:255" json:"titulo"`
	ImagemPath string  `gorm:"size:255;not null" json:"imagem_path"`
	Link       *string `gorm:"size:255" json:"link"`
	Largura    *int    `json:"largura"`
	Altura     *int    `json:"altura"`
	Exibir     bool    `gorm:"not null;default:false" json:"exibir"`
}

func (ImagensGt) TableName() string { return "imagens_gt" }

type InfoFretePagamento struct {
	Scoped
	FreteGratisAcima *float64 `gorm:"type:decimal(10,2)" json:"frete_gratis_acima"`
	ParcelasSemJuros *int     `json:"parcelas_sem_juros"`
	DescontoPix      *float64 `gorm:"type:decimal(5,2)" json:"desconto_pix"`
	Texto            *string  `gorm:"size:255" json:"texto"`
	Exibir           bool     `gorm:"not null;default:false" json:"exibir"`
}

func (InfoFretePagamento) TableName() string { return "info_frete_pagamento" }

type MarcaGt struct {
	Scoped
	Nome     string  `gorm:"size:100;not null" json:"nome"`
	LogoPath string  `gorm:"size:255;not null" json:"logo_path"`
	Link     *string `gorm:"size:255" json:"link"`
	Ordem    int     `gorm:"not null;default:0" json:"ordem"`
	Exibir   bool    `gorm:"not null;default:false" json:"exibir"`
}

func (MarcaGt) TableName() string { return "marcas_gt" }

type MensagemInstitucional struct {
	Scoped
	Titulo    string  `gorm:"size:255;not null" json:"titulo"`
	Mensagem  string  `gorm:"type:text;not null" json:"mensagem"`
	IconePath *string `gorm:"size:255" json:"icone_path"`
	Exibir    bool    `gorm:"not null;default:false" json:"exibir"`
}

func (MensagemInstitucional) TableName() string { return "mensagens_institucionais" }

type MostrarProduto struct {
	Scoped
	ProdutoID string  `gorm:"size:36;not null;index" json:"produto_id"`
	Titulo    *string `gorm:"size:255" json:"titulo"`
	Ordem     int     `gorm:"not null;default:0" json:"ordem"`
	Exibir    bool    `gorm:"not null;default:false" json:"exibir"`
}

func (MostrarProduto) TableName() string { return "mostrar_produtos" }

type Newsletter struct {
	Scoped
	Titulo     string  `gorm:"size:255;not null" json:"titulo"`
	Descricao  *string `gorm:"size:500" json:"descricao"`
	TextoBotao string  `gorm:"size:50" json:"texto_botao"`
	CorFundo   string  `gorm:"size:7" json:"cor_fundo"`
	ImagemPath *string `gorm:"size:255" json:"imagem_path"`
	Exibir     bool    `gorm:"not null;default:false" json:"exibir"`
}

func (Newsletter) TableName() string { return "newsletters" }

type PopupPromocional struct {
	Scoped
	Titulo         string  `gorm:"size:255;not null" json:"titulo"`
	Texto          *string `gorm:"type:text" json:"texto"`
	ImagemPath     *string `gorm:"size:255" json:"imagem_path"`
	Link           *string `gorm:"size:255" json:"link"`
	Cupom          *string `gorm:"size:50" json:"cupom"`
	AtrasoSegundos int     `gorm:"not null;default:0" json:"atraso_segundos"`
	Exibir         bool    `gorm:"not null;default:false" json:"exibir"`
}

func (PopupPromocional) TableName() string { return "popups_promocionais" }

type ProdutosEmDestaque struct {
	Scoped
	Titulo      string  `gorm:"size:255;not null" json:"titulo"`
	Quantidade  int     `gorm:"not null;default:8" json:"quantidade"`
	Colunas     int     `gorm:"not null;default:4" json:"colunas"`
	CategoriaID *string `gorm:"size:36;index" json:"categoria_id"`
	Exibir      bool    `gorm:"not null;default:false" json:"exibir"`
}

func (ProdutosEmDestaque) TableName() string { return "produtos_em_destaque" }

type ProdutosEmOferta struct {
	Scoped
	Titulo     string `gorm:"size:255;not null" json:"titulo"`
	Quantidade int    `gorm:"not null;default:8" json:"quantidade"`
	Colunas    int    `gorm:"not null;default:4" json:"colunas"`
	Ordenacao  string `gorm:"size:20;not null;default:'maior_desconto'" json:"ordenacao"`
	Exibir     bool   `gorm:"not null;default:false" json:"exibir"`
}

func (ProdutosEmOferta) TableName() string { return "produtos_em_oferta" }

type ProdutosNovos struct {
	Scoped
	Titulo       string `gorm:"size:255;not null" json:"titulo"`
	Quantidade   int    `gorm:"not null;default:8" json:"quantidade"`
	Colunas      int    `gorm:"not null;default:4" json:"colunas"`
	DiasNovidade int    `gorm:"not null;default:30" json:"dias_novidade"`
	Exibir       bool   `gorm:"not null;default:false" json:"exibir"`
}

func (ProdutosNovos) TableName() string { return "produtos_novos" }

type TextosGt struct {
	Scoped
	Chave    string `gorm:"size:100;not null" json:"chave"`
	Conteudo string `gorm:"type:text;not null" json:"conteudo"`
	Exibir   bool   `gorm:"not null;default:false" json:"exibir"`
}

func (TextosGt) TableName() string { return "textos_gt" }

type Video struct {
	Scoped
	Titulo        string  `gorm:"size:255;not null" json:"titulo"`
	URL           string  `gorm:"column:url;size:255;not null" json:"url"`
	ThumbnailPath *string `gorm:"size:255" json:"thumbnail_path"`
	Autoplay      bool    `gorm:"not null;default:false" json:"autoplay"`
	Exibir        bool    `gorm:"not null;default:false" json:"exibir"`
}

func (Video) TableName() string { return "videos" }

// Idioma is store-wide; it is not tied to a template.
type Idioma struct {
	StoreScoped
	Codigo string `gorm:"size:5;not null" json:"codigo"`
	Padrao bool   `gorm:"not null;default:false" json:"padrao"`
	Ativo  bool   `gorm:"not null" json:"ativo"`
}

func (Idioma) TableName() string { return "idiomas" }

// Entities lists every template-configuration model, in migration order.
func Entities() []interface{} {
	return []interface{}{
		&Anuncio{},
		&BannerEstatico{},
		&BannerPromocional{},
		&BannerRotativo{},
		&BannersCategoriasGt{},
		&Cabecalho{},
		&CarrinhoGt{},
		&CheckoutGt{},
		&Depoimento{},
		&FavoritosGt{},
		&ImagensGt{},
		&InfoFretePagamento{},
		&MarcaGt{},
		&MensagemInstitucional{},
		&MostrarProduto{},
		&Newsletter{},
		&PopupPromocional{},
		&ProdutosEmDestaque{},
		&ProdutosEmOferta{},
		&ProdutosNovos{},
		&TextosGt{},
		&Video{},
		&Idioma{},
	}
}
