package services

import (
	"sync"

	"storefront/internal/models"
)

func (s *StorefrontSuite) TestDeleteProduct() {
	s.Require().NoError(s.catalog.Delete(s.ctx, 3))

	products, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 5)
	for _, p := range products {
		s.NotEqual(3, p.ID)
	}

	_, err = s.catalog.Get(s.ctx, 3)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *StorefrontSuite) TestDeleteUnknownProductIsNoop() {
	before, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.catalog.Delete(s.ctx, 999))
	s.Require().NoError(s.catalog.Delete(s.ctx, 999))

	after, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *StorefrontSuite) TestListEmptyCatalog() {
	s.Require().NoError(s.store.Reset(s.ctx))

	products, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(products)
	s.Empty(products)
}

func (s *StorefrontSuite) TestAddProduct() {
	product, err := s.catalog.Add(s.ctx, &models.ProductRequest{Name: " Pixel 9 ", Price: 799, Image: "https://example.com/p.png"})
	s.Require().NoError(err)
	s.Equal("Pixel 9", product.Name)
	s.Equal(models.DefaultCategory, product.Category)
	s.Equal(7, product.ID)

	second, err := s.catalog.Add(s.ctx, &models.ProductRequest{Name: "Case", Price: 0, Category: "accessories"})
	s.Require().NoError(err)
	s.Equal(8, second.ID)

	products, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 8)
}

func (s *StorefrontSuite) TestAddProductValidation() {
	_, err := s.catalog.Add(s.ctx, &models.ProductRequest{Name: "  ", Price: 10})
	s.ErrorIs(err, ErrInvalidProduct)
	_, err = s.catalog.Add(s.ctx, &models.ProductRequest{Name: "Refund", Price: -1})
	s.ErrorIs(err, ErrInvalidProduct)

	products, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 6)
}

func (s *StorefrontSuite) TestSaveReplacesOrCreates() {
	updated, err := s.catalog.Save(s.ctx, 2, &models.ProductRequest{Name: "MacBook Pro M4", Price: 2199, Category: "electronics"})
	s.Require().NoError(err)
	s.Equal(2, updated.ID)

	got, err := s.catalog.Get(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal("MacBook Pro M4", got.Name)
	s.Equal(float64(2199), got.Price)

	products, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 6)

	_, err = s.catalog.Save(s.ctx, 40, &models.ProductRequest{Name: "Imported", Price: 5})
	s.Require().NoError(err)
	products, err = s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 7)

	// later ids do not collide with the explicitly saved one
	next, err := s.catalog.Add(s.ctx, &models.ProductRequest{Name: "Next", Price: 1})
	s.Require().NoError(err)
	s.Equal(41, next.ID)

	_, err = s.catalog.Save(s.ctx, 2, &models.ProductRequest{Name: "", Price: 1})
	s.ErrorIs(err, ErrInvalidProduct)
}

func (s *StorefrontSuite) TestEditFlow() {
	_, err := s.catalog.Editing(s.ctx, testScope)
	s.ErrorIs(err, ErrNotEditing)

	s.ErrorIs(s.catalog.BeginEdit(s.ctx, testScope, 999), ErrProductNotFound)

	s.Require().NoError(s.catalog.BeginEdit(s.ctx, testScope, 5))
	editing, err := s.catalog.Editing(s.ctx, testScope)
	s.Require().NoError(err)
	s.Equal(5, editing.ProductID)
	s.Require().NotNil(editing.Product)
	s.Equal("Sony Headphones", editing.Product.Name)

	saved, err := s.catalog.SaveEditing(s.ctx, testScope, &models.ProductRequest{Name: "Sony WH-1000XM5", Price: 399})
	s.Require().NoError(err)
	s.Equal(5, saved.ID)

	_, err = s.catalog.Editing(s.ctx, testScope)
	s.ErrorIs(err, ErrNotEditing)

	_, err = s.catalog.SaveEditing(s.ctx, testScope, &models.ProductRequest{Name: "x", Price: 1})
	s.ErrorIs(err, ErrNotEditing)
}

func (s *StorefrontSuite) TestEditingDeletedProduct() {
	s.Require().NoError(s.catalog.BeginEdit(s.ctx, testScope, 1))
	s.Require().NoError(s.catalog.Delete(s.ctx, 1))

	editing, err := s.catalog.Editing(s.ctx, testScope)
	s.Require().NoError(err)
	s.Equal(1, editing.ProductID)
	s.Nil(editing.Product)
}

func (s *StorefrontSuite) TestSaveAndAddNeverShareAnID() {
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_, err := s.catalog.Save(s.ctx, id, &models.ProductRequest{Name: "Saved", Price: 1})
			s.NoError(err)
		}(7 + 2*i)
		go func() {
			defer wg.Done()
			_, err := s.catalog.Add(s.ctx, &models.ProductRequest{Name: "Added", Price: 1})
			s.NoError(err)
		}()
	}
	wg.Wait()

	products, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(products), 6+30)
	ids := make(map[int]bool, len(products))
	for _, p := range products {
		s.False(ids[p.ID], "product id %d issued twice", p.ID)
		ids[p.ID] = true
	}

	next, err := s.store.NextID(s.ctx)
	s.Require().NoError(err)
	s.False(ids[next])
}
