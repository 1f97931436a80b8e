package ports

import "gorm.io/gorm"

type DB = *gorm.DB

var ErrRecordNotFound = gorm.ErrRecordNotFound
