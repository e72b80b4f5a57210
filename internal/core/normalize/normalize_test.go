package normalize

import "testing"

func TestStripTags(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"<b>good</b> item", "good item"},
		{"no tags", "no tags"},
		{"a<br/>b", "ab"},
		{`<img src="x.jpg">好评`, "好评"},
		{"3 < 5 and 6 > 4", "3  4"},
		{"dangling <", "dangling <"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StripTags(tc.in); got != tc.want {
			t.Fatalf("StripTags(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestBody(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"tags then trim", "  <b>good</b> item \n", "good item"},
		{"keeps inner newlines", "第一行\n第二行", "第一行\n第二行"},
		{"drops controls", "ok\x00\x07fine", "okfine"},
		{"keeps zwj emoji", "很好👨\u200d👩\u200d👧 é", "很好👨\u200d👩\u200d👧 é"},
		{"keeps combining marks", "e\u0301", "e\u0301"},
		{"keeps zero width space", "质\u200b量好", "质\u200b量好"},
		{"only markup", "<p></p>", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Body(tc.in); got != tc.want {
				t.Fatalf("Body(%q) = %q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripBrand(t *testing.T) {
	cases := []struct {
		in, brand, want string
	}{
		{"来自京东iPhone客户端", "来自京东", "iPhone客户端"},
		{"  来自京东  ", "来自京东", ""},
		{"Android", "来自京东", "Android"},
		{" raw ", "", "raw"},
	}
	for _, tc := range cases {
		if got := StripBrand(tc.in, tc.brand); got != tc.want {
			t.Fatalf("StripBrand(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestField(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{" 京东\u200b客户端 ", "京东客户端"},
		{"\ufeffAndroid", "Android"},
		{"caf\u0065\u0301", "caf\u00e9"},
	}
	for _, tc := range cases {
		if got := Field(tc.in); got != tc.want {
			t.Fatalf("Field(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"clean", "clean"},
		{"tab\tand\nnewline", "tab\tand\nnewline"},
		{"del\x7f", "del"},
		{"c1\u0085x", "c1x"},
		{"bad\xffbyte", "badbyte"},
		{"crlf\r\nline", "crlf\nline"},
		{"全\u3000角\u00a0空格", "全 角 空格"},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Fatalf("Sanitize(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}
