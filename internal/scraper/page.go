package scraper

import (
	"fmt"
	"strings"

	"dropship-dashboard/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// Skipped descreve um card que não pôde ser extraído
type Skipped struct {
	Index  int
	Reason string
}

// ParseProducts extrai até max cards de produto de uma página de resultados
func ParseProducts(html string, max int) ([]models.Product, []Skipped, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, err
	}

	var products []models.Product
	var skipped []Skipped
	doc.Find(".product-item").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if max > 0 && i >= max {
			return false
		}
		p, err := productFromCard(s)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Reason: err.Error()})
			return true
		}
		products = append(products, p)
		return true
	})
	return products, skipped, nil
}

func productFromCard(s *goquery.Selection) (models.Product, error) {
	id, ok := s.Attr("data-id")
	if !ok || strings.TrimSpace(id) == "" {
		return models.Product{}, fmt.Errorf("missing data-id")
	}
	name, err := requiredText(s, ".product-title")
	if err != nil {
		return models.Product{}, err
	}
	price, err := requiredText(s, ".product-price")
	if err != nil {
		return models.Product{}, err
	}
	img, ok := s.Find("img").First().Attr("src")
	if !ok {
		return models.Product{}, fmt.Errorf("missing img")
	}
	href, ok := s.Find(".product-link").First().Attr("href")
	if !ok {
		return models.Product{}, fmt.Errorf("missing .product-link")
	}

	return models.Product{
		ID:       strings.TrimSpace(id),
		Name:     name,
		Supplier: "AliExpress",
		Price:    price,
		Image:    img,
		URL:      href,
	}, nil
}

// ParseOrders extrai até limit linhas da página de pedidos
func ParseOrders(html string, limit int) ([]models.Order, []Skipped, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, err
	}

	var orders []models.Order
	var skipped []Skipped
	doc.Find(".order-item").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if limit > 0 && i >= limit {
			return false
		}
		o, err := orderFromRow(s)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Reason: err.Error()})
			return true
		}
		orders = append(orders, o)
		return true
	})
	return orders, skipped, nil
}

func orderFromRow(s *goquery.Selection) (models.Order, error) {
	id, ok := s.Attr("data-id")
	if !ok || strings.TrimSpace(id) == "" {
		return models.Order{}, fmt.Errorf("missing data-id")
	}

	fields := map[string]string{
		".order-date":    "",
		".customer-name": "",
		".order-total":   "",
		".order-status":  "",
	}
	for sel := range fields {
		text, err := requiredText(s, sel)
		if err != nil {
			return models.Order{}, err
		}
		fields[sel] = text
	}

	return models.Order{
		ExternalID: strings.TrimSpace(id),
		OrderedAt:  fields[".order-date"],
		Customer:   fields[".customer-name"],
		Total:      fields[".order-total"],
		Status:     fields[".order-status"],
	}, nil
}

func requiredText(s *goquery.Selection, selector string) (string, error) {
	el := s.Find(selector).First()
	if el.Length() == 0 {
		return "", fmt.Errorf("missing %s", selector)
	}
	return strings.TrimSpace(el.Text()), nil
}
