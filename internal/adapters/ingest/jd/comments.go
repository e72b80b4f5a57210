package jd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	perr "reviewharvest/internal/platform/errors"
)

const acceptJSONP = "application/json, text/javascript, */*; q=0.01"

// Comments fetches one 1-based page of comments and returns the raw records in page order
// A payload without a comments key is an empty page, not an error
func (c *Client) Comments(ctx context.Context, productID string, page int) ([]json.RawMessage, error) {
	if productID == "" {
		return nil, perr.WithField(perr.InvalidArgf("product id is required"), "product_id")
	}
	if page < 1 {
		return nil, perr.WithField(perr.InvalidArgf("page must be >= 1"), "page")
	}

	q := url.Values{}
	q.Set("callback", c.callback())
	q.Set("productId", productID)
	q.Set("score", "0")
	q.Set("sortType", strconv.Itoa(c.opts.SortType))
	q.Set("page", strconv.Itoa(page-1))
	q.Set("pageSize", strconv.Itoa(c.opts.PageSize))
	q.Set("isShadowSku", "0")
	q.Set("fold", "1")

	body, err := c.get(ctx, c.opts.CommentsURL+"?"+q.Encode(), acceptJSONP)
	if err != nil {
		return nil, perr.WithOp(err, "jd.comments")
	}
	recs, err := decodeComments(body)
	if err != nil {
		return nil, perr.WithOp(err, "jd.comments")
	}
	return recs, nil
}

// unwrapJSONP returns what sits between the first '(' and the last ')'
func unwrapJSONP(body []byte) ([]byte, error) {
	i := bytes.IndexByte(body, '(')
	j := bytes.LastIndexByte(body, ')')
	if i < 0 || j <= i {
		return nil, perr.Decodef("jd body is not a jsonp envelope")
	}
	return bytes.TrimSpace(body[i+1 : j]), nil
}

func decodeComments(body []byte) ([]json.RawMessage, error) {
	inner, err := unwrapJSONP(body)
	if err != nil {
		return nil, err
	}
	var env struct {
		Comments json.RawMessage `json:"comments"`
	}
	if err := json.Unmarshal(inner, &env); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDecode, "jd jsonp payload")
	}
	out := []json.RawMessage{}
	if len(env.Comments) == 0 || string(env.Comments) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Comments, &out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDecode, "jd comments is not a list")
	}
	return out, nil
}
