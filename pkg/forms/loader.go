package forms

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"skillswap-forms/pkg/validator"
)

// document 表单定义文件的结构
//
//	forms:
//	  - name: login
//	    password_min_length: 1
//	    fields:
//	      - {id: email, kind: email, required: true}
//	      - {id: password, kind: password, required: true}
type document struct {
	Forms []*validator.FormSpec `yaml:"forms"`
}

// Decode 从 YAML 读取表单定义，未知字段视为错误
func Decode(r io.Reader) ([]*validator.FormSpec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode forms: %w", err)
	}
	return doc.Forms, nil
}

// LoadFile 读取表单定义文件
func LoadFile(path string) ([]*validator.FormSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open forms file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// LoadFile 读取表单定义文件并注册，同名表单覆盖已有定义
// 任意表单配置错误都会中止加载，已注册的表单保持不变
func (r *Registry) LoadFile(path string) error {
	specs, err := LoadFile(path)
	if err != nil {
		return err
	}

	for _, form := range specs {
		if form == nil {
			return ErrNilForm
		}
		if err := validateName(form.Name); err != nil {
			return err
		}
		if err := r.engine.Compile(form); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	for _, form := range specs {
		if err := r.Replace(form); err != nil {
			return err
		}
	}

	r.logger.Info("已加载表单定义文件", zap.String("path", path), zap.Int("forms", len(specs)))
	return nil
}
