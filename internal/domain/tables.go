package domain

var Tables = []interface{}{
	// System
	&SysOpr{},
	// Catalog
	&Produk{},
}
