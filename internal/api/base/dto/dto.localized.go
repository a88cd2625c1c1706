// Package basedto chứa các kiểu input dùng chung giữa các domain:
// field đa ngôn ngữ decode được cả payload cũ (string đơn) lẫn payload
// mới (object {vi, en}), và các kiểu số chấp nhận cả string số.
package basedto

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hoangtien07/AI-Tool-server/internal/common"
	"github.com/hoangtien07/AI-Tool-server/internal/i18n"
)

// LocalizedValue là i18n.Text decode được từ string hoặc object {vi, en}.
// String đơn được nhân đôi cho cả hai ngôn ngữ; object chỉ giữ các key có mặt.
type LocalizedValue i18n.Text

func (v *LocalizedValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = LocalizedValue(i18n.Text{i18n.LangVI: s, i18n.LangEN: s})
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return common.ErrInvalidFormat
	}
	out := i18n.Text{}
	for lang, val := range m {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if i18n.IsSupported(lang) {
			out[lang] = val
		}
	}
	*v = LocalizedValue(out)
	return nil
}

// Text trả về giá trị dạng i18n.Text, nil nếu rỗng.
func (v LocalizedValue) Text() i18n.Text {
	if len(v) == 0 {
		return nil
	}
	return i18n.Text(v)
}

// LocalizedList decode được từ mảng string, mảng object {vi, en} hoặc trộn lẫn.
type LocalizedList []LocalizedValue

func (l *LocalizedList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return common.ErrInvalidFormat
	}
	out := make(LocalizedList, 0, len(raws))
	for _, raw := range raws {
		var v LocalizedValue
		if err := v.UnmarshalJSON(raw); err != nil {
			return err
		}
		if len(v) > 0 {
			out = append(out, v)
		}
	}
	*l = out
	return nil
}

// Texts trả về danh sách dạng []i18n.Text, nil nếu rỗng.
func (l LocalizedList) Texts() []i18n.Text {
	if len(l) == 0 {
		return nil
	}
	out := make([]i18n.Text, 0, len(l))
	for _, v := range l {
		if t := v.Text(); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// LocalizedRich là nội dung rich text theo ngôn ngữ, decode được từ string
// HTML đơn hoặc object {vi, en} với giá trị là HTML thô. Sanitize và trích
// plain text do tầng service đảm nhiệm khi ghi.
type LocalizedRich map[string]string

func (r *LocalizedRich) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = LocalizedRich{i18n.LangVI: s, i18n.LangEN: s}
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return common.ErrInvalidFormat
	}
	out := LocalizedRich{}
	for lang, val := range m {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if i18n.IsSupported(lang) {
			out[lang] = val
		}
	}
	*r = out
	return nil
}

// RichText chuyển sang i18n.RichText với Raw gán theo từng ngôn ngữ,
// các biến thể rỗng bị bỏ. HTML/Text để trống cho richtext.PackText xử lý.
func (r LocalizedRich) RichText() i18n.RichText {
	out := i18n.RichText{}
	for lang, raw := range r {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out[lang] = i18n.RichContent{Raw: raw}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FlexibleInt decode được từ số hoặc string số (payload cũ gửi số dạng string).
type FlexibleInt int

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		v, convErr := n.Int64()
		if convErr != nil {
			return common.ErrInvalidFormat
		}
		*f = FlexibleInt(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return common.ErrInvalidFormat
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return common.ErrInvalidFormat
	}
	*f = FlexibleInt(v)
	return nil
}

// FlexibleFloat decode được từ số hoặc string số.
type FlexibleFloat float64

func (f *FlexibleFloat) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		v, convErr := n.Float64()
		if convErr != nil {
			return common.ErrInvalidFormat
		}
		*f = FlexibleFloat(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return common.ErrInvalidFormat
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return common.ErrInvalidFormat
	}
	*f = FlexibleFloat(v)
	return nil
}
