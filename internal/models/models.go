package models

// Loja is a tenant shop. Pasta is the root folder of its uploaded files.
type Loja struct {
	Base
	Nome      string     `gorm:"not null" json:"nome"`
	Pasta     string     `gorm:"not null;uniqueIndex;size:191" json:"pasta"`
	Templates []Template `gorm:"foreignKey:LojaID;constraint:OnDelete:CASCADE" json:"templates,omitempty"`
}

// Template is a named storefront layout configuration of a store.
type Template struct {
	Base
	LojaID string `gorm:"size:36;not null;index" json:"loja_id"`
	Nome   string `gorm:"not null" json:"nome"`
}

// Categoria and Produto belong to the store catalog, which is managed
// elsewhere; they are only referenced by foreign keys here.
type Categoria struct {
	Base
	LojaID string `gorm:"size:36;not null;index" json:"loja_id"`
	Nome   string `gorm:"not null" json:"nome"`
}

type Produto struct {
	Base
	LojaID string `gorm:"size:36;not null;index" json:"loja_id"`
	Nome   string `gorm:"not null" json:"nome"`
}

// Tarefa is a to-do item. It has no owner.
type Tarefa struct {
	Base
	Titulo    string       `gorm:"size:255;not null" json:"titulo"`
	Descricao *string      `gorm:"type:text" json:"descricao"`
	Status    TarefaStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
}

func (Loja) TableName() string      { return "lojas" }
func (Template) TableName() string  { return "templates" }
func (Categoria) TableName() string { return "categorias" }
func (Produto) TableName() string   { return "produtos" }
func (Tarefa) TableName() string    { return "tarefas" }
