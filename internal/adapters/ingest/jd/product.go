package jd

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Product status values
const (
	StatusActive  = "active"
	StatusUnknown = "unknown"
)

// ProductInfo is the best effort summary of a product page
type ProductInfo struct {
	ProductID  string  `json:"product_id"`
	ProductURL string  `json:"product_url"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

// ProductURL returns the item page for a product
func (c *Client) ProductURL(productID string) string {
	return strings.TrimRight(c.opts.ItemURL, "/") + "/" + productID + ".html"
}

// ProductInfo never fails; any problem yields the placeholder with status unknown
func (c *Client) ProductInfo(ctx context.Context, productID string) ProductInfo {
	info := ProductInfo{
		ProductID:  productID,
		ProductURL: c.ProductURL(productID),
		Title:      "商品" + productID,
		Status:     StatusUnknown,
	}

	body, err := c.get(ctx, info.ProductURL, acceptHTML)
	if err != nil {
		c.log.Error().Err(err).Str("product_id", productID).Msg("jd product page failed")
		return info
	}
	info.Status = StatusActive

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		c.log.Warn().Err(err).Str("product_id", productID).Msg("jd product page parse failed")
		return info
	}
	if t := pageTitle(doc); t != "" {
		info.Title = t
	}
	info.Price = pagePrice(doc)
	return info
}

func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find(".sku-name").First().Text()); t != "" {
		return t
	}
	t := strings.TrimSpace(doc.Find("title").First().Text())
	// item titles look like "name【行情 报价 价格 评测】-京东"
	if i := strings.Index(t, "【"); i > 0 {
		t = strings.TrimSpace(t[:i])
	}
	return strings.TrimSuffix(t, "-京东")
}

// pagePrice reads a server rendered price when present; usually it is filled by script so 0 is common
func pagePrice(doc *goquery.Document) float64 {
	raw := strings.TrimSpace(doc.Find(".p-price .price").First().Text())
	if raw == "" {
		raw, _ = doc.Find(`meta[itemprop="price"]`).First().Attr("content")
	}
	raw = strings.TrimLeft(strings.TrimSpace(raw), "￥¥")
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || p < 0 {
		return 0
	}
	return p
}
