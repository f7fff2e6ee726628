package domain

import "time"

// Produk is the catalog product entity.
// Harga is stored as opaque text so formatted currency strings survive
// round-trips unchanged; no numeric parsing happens anywhere.
type Produk struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id" form:"id"`
	NamaProduk string    `gorm:"index" json:"nama_produk" form:"nama_produk"`
	Deskripsi  string    `json:"deskripsi" form:"deskripsi"`
	Harga      string    `json:"harga" form:"harga"`
	ImageUrl   *string   `gorm:"size:1024" json:"image_url" form:"image_url"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName Specify table name
func (Produk) TableName() string {
	return "produk"
}
