// Copyright (C) 2025 Dhrumil Mistry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package repositories

import (
	"os"

	"gorm.io/gorm"
)

type GormRepository[ID comparable, T any] struct {
	db *gorm.DB
}

func newGormRepository[ID comparable, T any](db *gorm.DB) *GormRepository[ID, T] {
	return &GormRepository[ID, T]{db: db}
}

func (g *GormRepository[ID, T]) Create(t *T) error {
	return g.db.Create(t).Error
}

func (g *GormRepository[ID, T]) Read(id ID) (T, error) {
	var t T
	err := g.db.First(&t, "id = ?", id).Error
	return t, err
}

func (g *GormRepository[ID, T]) Save(t *T) error {
	return g.db.Save(t).Error
}

func (g *GormRepository[ID, T]) Delete(id ID) error {
	var t T
	return g.db.Delete(&t, "id = ?", id).Error
}

func autoMigrate(db *gorm.DB, model any) {
	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		if err := db.AutoMigrate(model); err != nil {
			panic(err)
		}
	}
}

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
