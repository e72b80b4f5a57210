// Package review maps provider review records into the canonical record shape
package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"reviewharvest/internal/core/normalize"
)

// Brand is the provider branding stripped from the device field
const Brand = "来自京东"

// Image is one entry of the provider images list
type Image struct {
	ImgURL Text `json:"imgUrl"`
}

// Raw is the provider shaped record, every field optional
type Raw struct {
	ID              Text    `json:"id"`
	Nickname        Text    `json:"nickname"`
	Content         Text    `json:"content"`
	CreationTime    Text    `json:"creationTime"`
	Score           Score   `json:"score"`
	UsefulVoteCount Count   `json:"usefulVoteCount"`
	ReplyCount      Count   `json:"replyCount"`
	UserLevelID     Text    `json:"userLevelId"`
	UserLevelName   Text    `json:"userLevelName"`
	ReferenceInfo   Text    `json:"referenceInfo"`
	ProductColor    Text    `json:"productColor"`
	ProductSize     Text    `json:"productSize"`
	Images          []Image `json:"images"`
	IsMobile        Flag    `json:"isMobile"`
	IsTop           Flag    `json:"isTop"`
}

// Record is the canonical review record
type Record struct {
	CommentID       string          `json:"comment_id"`
	UserID          string          `json:"user_id"`
	CommentContent  string          `json:"comment_content"`
	CommentTime     string          `json:"comment_time"`
	StarRating      int             `json:"star_rating"`
	UsefulVoteCount int64           `json:"useful_vote_count"`
	ReplyCount      int64           `json:"reply_count"`
	UserLevel       string          `json:"user_level"`
	UserLevelName   string          `json:"user_level_name"`
	PhoneModel      string          `json:"phone_model"`
	ProductColor    string          `json:"product_color"`
	ProductSize     string          `json:"product_size"`
	IsMobile        bool            `json:"is_mobile"`
	IsPurchased     bool            `json:"is_purchased"`
	Images          []string        `json:"images"`
	RawData         json.RawMessage `json:"raw_data"`
}

// Normalize decodes one raw provider record and cleans it
// an error means the record is unusable and should be skipped on its own
func Normalize(raw json.RawMessage) (Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, fmt.Errorf("review: record is not an object")
	}
	var r Raw
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return Record{}, fmt.Errorf("review: %w", err)
	}
	rec := r.Canonical()
	rec.RawData = append(json.RawMessage(nil), trimmed...)
	return rec, nil
}

// Canonical maps an already decoded record, RawData is left empty
func (r Raw) Canonical() Record {
	images := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, string(img.ImgURL))
	}
	return Record{
		CommentID:       string(r.ID),
		UserID:          string(r.Nickname),
		CommentContent:  normalize.Body(string(r.Content)),
		CommentTime:     string(r.CreationTime),
		StarRating:      r.Score.Rating(),
		UsefulVoteCount: int64(r.UsefulVoteCount),
		ReplyCount:      int64(r.ReplyCount),
		UserLevel:       string(r.UserLevelID),
		UserLevelName:   string(r.UserLevelName),
		PhoneModel:      normalize.StripBrand(string(r.ReferenceInfo), Brand),
		ProductColor:    string(r.ProductColor),
		ProductSize:     string(r.ProductSize),
		IsMobile:        bool(r.IsMobile),
		IsPurchased:     bool(r.IsTop),
		Images:          images,
	}
}

// Zone is the provider's wall clock, timestamps carry no offset
var Zone = time.FixedZone("CST", 8*60*60)

var timeLayouts = []string{time.DateTime, time.DateOnly}

// ParseTime reads a provider timestamp, full datetime first then date only
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, Zone); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
