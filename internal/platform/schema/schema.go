// Package schema は送出直前のレスポンスが公開契約どおりの形かを検査する。
// スキーマ文書は埋め込み、コンパイルはプロセスで一度だけ
// （毎リクエストの再読込・再パースはしない）。
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed employee-request.schema.json employee-response.schema.json
var schemaFS embed.FS

const (
	requestSchemaURL  = "schemas/employee-request.schema.json"
	responseSchemaURL = "schemas/employee-response.schema.json"
)

var (
	loadOnce       sync.Once
	loadErr        error
	requestSchema  *jsonschema.Schema
	responseSchema *jsonschema.Schema
)

func load() error {
	loadOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, name := range []string{"employee-request.schema.json", "employee-response.schema.json"} {
			buf, err := schemaFS.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("スキーマ読み込み失敗 %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf))
			if err != nil {
				loadErr = fmt.Errorf("スキーマのパース失敗 %s: %w", name, err)
				return
			}
			if err := c.AddResource("schemas/"+name, doc); err != nil {
				loadErr = fmt.Errorf("スキーマ登録失敗 %s: %w", name, err)
				return
			}
		}
		if requestSchema, loadErr = c.Compile(requestSchemaURL); loadErr != nil {
			return
		}
		responseSchema, loadErr = c.Compile(responseSchemaURL)
	})
	return loadErr
}

// Load: 起動時に呼んでコンパイル結果を確定させる。失敗したら起動中断。
func Load() error { return load() }

// ValidateEmployeeRequest: employee-request.schema.json に対する検査。
func ValidateEmployeeRequest(v any) error {
	if err := load(); err != nil {
		return err
	}
	return validate(requestSchema, v)
}

// ValidateEmployeeResponse: 単一レコードレスポンスの出口ガード。
// 失敗はクライアント起因ではなく契約ドリフトなので呼び出し側で500にする。
func ValidateEmployeeResponse(v any) error {
	if err := load(); err != nil {
		return err
	}
	return validate(responseSchema, v)
}

func validate(s *jsonschema.Schema, v any) error {
	// structをJSON経由で素の値に落としてから検査する
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return err
	}
	return s.Validate(inst)
}
