package fixture

import "testing"

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if len(c.Products) == 0 {
		t.Fatal("fixture has no products")
	}
	if len(c.Publishers) == 0 {
		t.Fatal("fixture has no publishers")
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	c.Products = append(c.Products, c.Products[0])
	if err := c.validate(); err == nil {
		t.Fatal("expected duplicate id to fail validation")
	}
}
