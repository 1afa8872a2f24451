package render

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"HRIS-backend/internal/platform/apierr"
)

const contentTypeXML = "application/xml; charset=utf-8"

// WantsXML: クライアントが Accept で XML を明示した場合のみ true。
// それ以外は JSON がデフォルト。
func WantsXML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/xml") || strings.Contains(accept, "text/xml")
}

// Respond: 成功・失敗を問わず出口は全てここ。
// XML の場合は payload を JSON 経由で素の map/slice に落としてから変換する
// （DTO の struct タグをそのまま XML の要素名に使うため）。
func Respond(c *gin.Context, status int, root string, payload any) {
	if !WantsXML(c) {
		c.JSON(status, payload)
		return
	}
	c.Data(status, contentTypeXML, []byte(ToXML(root, toPlain(payload))))
}

// Message: {"message": ...} 形のレスポンス。XML時の root は "response"。
func Message(c *gin.Context, status int, msg string) {
	Respond(c, status, "response", gin.H{"message": msg})
}

// Error: APIError を HTTPステータスへ写像して描画する。
// バリデーション失敗は errors（フィールド→メッセージ列）付き。
func Error(c *gin.Context, err error) {
	status := apierr.ToHTTPStatus(err)

	var api *apierr.APIError
	if !errors.As(err, &api) {
		Respond(c, status, "response", gin.H{"message": err.Error()})
		return
	}
	body := gin.H{"message": api.Message}
	if len(api.Fields) > 0 {
		body["errors"] = api.Fields
	}
	Respond(c, status, "response", body)
}

func toPlain(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	if out == nil {
		return map[string]any{}
	}
	return out
}
