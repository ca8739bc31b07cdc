package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysAdmin{},
	&SysAdminLog{},
	// Catalog
	&Product{},
	&Category{},
	&Feature{},
	// Shop
	&User{},
	&Cart{},
	&Wishlist{},
	&Order{},
	// Marketing
	&Banner{},
	&Announcement{},
	&Notification{},
}
