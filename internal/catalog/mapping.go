package catalog

import "github.com/angelmondragon/daypass-backend/pkg/db/models"

func batchFromModel(m models.Batch) Batch {
	return Batch{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Active:      m.Active,
		ActivatedAt: m.ActivatedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func batchToModel(b Batch) models.Batch {
	return models.Batch{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Active:      b.Active,
		ActivatedAt: b.ActivatedAt,
		CreatedAt:   b.CreatedAt,
	}
}

func productFromModel(m models.Product) Product {
	return Product{
		ID:          m.ID,
		BatchID:     m.BatchID,
		Key:         Key{Day: m.Day, Category: m.Category},
		DisplayName: m.DisplayName,
		Description: m.Description,
		Stock:       m.Stock,
		Brackets: Brackets{
			m.PriceBracket1,
			m.PriceBracket2,
			m.PriceBracket3,
			m.PriceBracket4,
			m.PriceBracket5,
			m.PriceBracket6,
		},
		Persisted: true,
	}
}

func productToModel(p Product) models.Product {
	return models.Product{
		ID:            p.ID,
		BatchID:       p.BatchID,
		Day:           p.Day,
		Category:      p.Category,
		DisplayName:   p.DisplayName,
		Description:   p.Description,
		Stock:         p.Stock,
		PriceBracket1: p.Brackets[0],
		PriceBracket2: p.Brackets[1],
		PriceBracket3: p.Brackets[2],
		PriceBracket4: p.Brackets[3],
		PriceBracket5: p.Brackets[4],
		PriceBracket6: p.Brackets[5],
	}
}
