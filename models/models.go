package models

// All returns every model managed by AutoMigrate, in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Property{},
		&Lead{},
		&Reminder{},
		&ServiceCategory{},
		&GalleryItem{},
	}
}
