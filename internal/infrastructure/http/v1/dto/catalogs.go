package dto

import (
	"retailhub/internal/core/types"
	"retailhub/internal/domain/catalogs/category"
	"retailhub/internal/domain/catalogs/product"
	"retailhub/internal/domain/catalogs/store"
)

// --- Store ---

// CreateStoreRequest for creating stores.
type CreateStoreRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Owner   string `json:"owner"`
	Phone   string `json:"phone"`
}

// ToEntity converts the request to a Store.
func (r CreateStoreRequest) ToEntity() *store.Store {
	st := store.New(r.Code, r.Name)
	st.Address = r.Address
	st.Owner = r.Owner
	st.Phone = r.Phone
	return st
}

// UpdateStoreRequest for updating stores. Nil fields are left unchanged.
type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Owner   *string `json:"owner"`
	Phone   *string `json:"phone"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing Store.
func (r UpdateStoreRequest) ApplyTo(st *store.Store) {
	if r.Name != nil {
		st.Name = *r.Name
	}
	if r.Address != nil {
		st.Address = *r.Address
	}
	if r.Owner != nil {
		st.Owner = *r.Owner
	}
	if r.Phone != nil {
		st.Phone = *r.Phone
	}
	st.Version = r.Version
}

// SetStoreStatusRequest pauses or resumes a store.
type SetStoreStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- Category ---

// CreateCategoryRequest for creating categories.
type CreateCategoryRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentId"`
	IsFolder bool    `json:"isFolder"`
}

// ToEntity converts the request to a Category.
func (r CreateCategoryRequest) ToEntity() *category.Category {
	cat := category.New(r.Code, r.Name)
	cat.ParentID = r.ParentID
	cat.IsFolder = r.IsFolder
	return cat
}

// UpdateCategoryRequest for updating categories.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parentId"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing Category.
func (r UpdateCategoryRequest) ApplyTo(cat *category.Category) {
	if r.Name != nil {
		cat.Name = *r.Name
	}
	if r.ParentID != nil {
		cat.ParentID = r.ParentID
	}
	cat.Version = r.Version
}

// --- Product ---

// CreateProductRequest for creating products. Prices are decimal strings.
type CreateProductRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	SKU            string  `json:"sku" binding:"required"`
	Barcode        string  `json:"barcode"`
	CategoryID     *string `json:"categoryId"`
	Price          string  `json:"price" binding:"required"`
	WholesalePrice string  `json:"wholesalePrice"`
	CostPrice      string  `json:"costPrice"`
	Unit           string  `json:"unit"`
	SaleUnit       string  `json:"saleUnit"`
	Conversion     float64 `json:"conversion"`
	MinStock       float64 `json:"minStock"`
	MaxStock       float64 `json:"maxStock"`
}

// ToEntity converts the request to a Product.
func (r CreateProductRequest) ToEntity() (*product.Product, error) {
	price, err := types.NewMoneyFromString(r.Price)
	if err != nil {
		return nil, err
	}

	p := product.New(r.Code, r.Name, r.SKU, price)
	p.Barcode = r.Barcode
	p.CategoryID = r.CategoryID
	if r.WholesalePrice != "" {
		if p.WholesalePrice, err = types.NewMoneyFromString(r.WholesalePrice); err != nil {
			return nil, err
		}
	}
	if r.CostPrice != "" {
		if p.CostPrice, err = types.NewMoneyFromString(r.CostPrice); err != nil {
			return nil, err
		}
	}
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	p.SaleUnit = r.SaleUnit
	if r.Conversion > 0 {
		p.Conversion = r.Conversion
	}
	p.MinStock = types.NewQuantityFromFloat64(r.MinStock)
	p.MaxStock = types.NewQuantityFromFloat64(r.MaxStock)
	return p, nil
}

// UpdateProductRequest for updating products. Stock is not updatable here;
// stock changes only flow through warehouse movements.
type UpdateProductRequest struct {
	Name           *string  `json:"name"`
	Barcode        *string  `json:"barcode"`
	CategoryID     *string  `json:"categoryId"`
	Price          *string  `json:"price"`
	WholesalePrice *string  `json:"wholesalePrice"`
	CostPrice      *string  `json:"costPrice"`
	Unit           *string  `json:"unit"`
	SaleUnit       *string  `json:"saleUnit"`
	Conversion     *float64 `json:"conversion"`
	MinStock       *float64 `json:"minStock"`
	MaxStock       *float64 `json:"maxStock"`
	Version        int      `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing Product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) error {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Barcode != nil {
		p.Barcode = *r.Barcode
	}
	if r.CategoryID != nil {
		p.CategoryID = r.CategoryID
	}
	if r.Price != nil {
		price, err := types.NewMoneyFromString(*r.Price)
		if err != nil {
			return err
		}
		p.Price = price
	}
	if r.WholesalePrice != nil {
		price, err := types.NewMoneyFromString(*r.WholesalePrice)
		if err != nil {
			return err
		}
		p.WholesalePrice = price
	}
	if r.CostPrice != nil {
		price, err := types.NewMoneyFromString(*r.CostPrice)
		if err != nil {
			return err
		}
		p.CostPrice = price
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.SaleUnit != nil {
		p.SaleUnit = *r.SaleUnit
	}
	if r.Conversion != nil {
		p.Conversion = *r.Conversion
	}
	if r.MinStock != nil {
		p.MinStock = types.NewQuantityFromFloat64(*r.MinStock)
	}
	if r.MaxStock != nil {
		p.MaxStock = types.NewQuantityFromFloat64(*r.MaxStock)
	}
	p.Version = r.Version
	return nil
}
