package render

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const xmlHeader = `<?xml version="1.0"?>` + "\n"

// ToXML: 値を root 要素配下のXML文書へ再帰変換する。
// map は子要素、slice の各要素は <item>、リーフはエスケープ済みテキスト。
// 配列かオブジェクトかの区別は要素ネストに潰れる（消費側スキーマが固定なので許容）。
func ToXML(root string, v any) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	writeElement(&b, root, v)
	b.WriteString("\n")
	return b.String()
}

func writeElement(b *strings.Builder, name string, v any) {
	switch t := v.(type) {
	case map[string]any:
		b.WriteString("<" + name + ">")
		// Goのmapは順序を持たないのでキー順で固定する
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeElement(b, k, t[k])
		}
		b.WriteString("</" + name + ">")
	case []any:
		b.WriteString("<" + name + ">")
		for _, e := range t {
			writeElement(b, "item", e)
		}
		b.WriteString("</" + name + ">")
	default:
		b.WriteString("<" + name + ">")
		b.WriteString(escape(leafString(v)))
		b.WriteString("</" + name + ">")
	}
}

func leafString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		// JSON経由の数値は全てfloat64。整数はそのまま、少数は最短表現。
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
