package catalogue

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var defaultData []byte

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownField    = errors.New("unknown field")
)

// Field 一项技术规格
type Field struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
}

// Category 一种显示器尺寸分类及其规格值
type Category struct {
	Name    string            `yaml:"name" json:"name"`
	Tagline string            `yaml:"tagline" json:"tagline"`
	Specs   map[string]string `yaml:"specs" json:"specs"`
}

// Spec 单条 (分类, 规格, 值)
type Spec struct {
	Category string
	Field    string
	Value    string
}

// Selection 用户选择的分类和规格，保持选择顺序
type Selection struct {
	Categories []string `json:"categories"`
	Fields     []string `json:"fields"`
}

// Empty 分类或规格任一为空
func (s Selection) Empty() bool {
	return len(s.Categories) == 0 || len(s.Fields) == 0
}

// Catalogue 只读规格目录，加载后不再修改
type Catalogue struct {
	fields     []Field
	categories []Category
	fieldIdx   map[string]int
	catIdx     map[string]int
}

type document struct {
	Fields     []Field    `yaml:"fields"`
	Categories []Category `yaml:"categories"`
}

var loadDefault = sync.OnceValues(func() (*Catalogue, error) {
	return Load(defaultData)
})

// Default 返回内置目录
func Default() (*Catalogue, error) {
	return loadDefault()
}

// Load 解析 YAML 目录并校验引用的规格名
func Load(data []byte) (*Catalogue, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	c := &Catalogue{
		fields:     doc.Fields,
		categories: doc.Categories,
		fieldIdx:   make(map[string]int, len(doc.Fields)),
		catIdx:     make(map[string]int, len(doc.Categories)),
	}
	for i, f := range doc.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field #%d has no name", i)
		}
		if _, dup := c.fieldIdx[f.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", f.Name)
		}
		c.fieldIdx[f.Name] = i
	}
	for i, cat := range doc.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("category #%d has no name", i)
		}
		if _, dup := c.catIdx[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}
		for name := range cat.Specs {
			if _, ok := c.fieldIdx[name]; !ok {
				return nil, fmt.Errorf("category %q: %w %q", cat.Name, ErrUnknownField, name)
			}
		}
		c.catIdx[cat.Name] = i
	}
	return c, nil
}

// Fields 按声明顺序返回全部规格
func (c *Catalogue) Fields() []Field {
	return append([]Field(nil), c.fields...)
}

// FieldNames 按声明顺序返回规格名
func (c *Catalogue) FieldNames() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name
	}
	return names
}

// Field 按名称查找规格
func (c *Catalogue) Field(name string) (Field, bool) {
	i, ok := c.fieldIdx[name]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

// Categories 按声明顺序返回全部分类
func (c *Catalogue) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		specs := make(map[string]string, len(cat.Specs))
		for k, v := range cat.Specs {
			specs[k] = v
		}
		out[i] = Category{Name: cat.Name, Tagline: cat.Tagline, Specs: specs}
	}
	return out
}

// CategoryNames 按声明顺序返回分类名
func (c *Catalogue) CategoryNames() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Value 查找分类下某项规格的值
func (c *Catalogue) Value(category, field string) (string, bool) {
	i, ok := c.catIdx[category]
	if !ok {
		return "", false
	}
	v, ok := c.categories[i].Specs[field]
	return v, ok
}

// Validate 检查选择中的分类和规格都存在于目录中
func (c *Catalogue) Validate(sel Selection) error {
	for _, name := range sel.Categories {
		if _, ok := c.catIdx[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
	}
	for _, name := range sel.Fields {
		if _, ok := c.fieldIdx[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	return nil
}

// Specs 展开选择：分类在外层，规格按选择顺序，缺失的规格直接跳过
func (c *Catalogue) Specs(sel Selection) []Spec {
	var out []Spec
	for _, category := range sel.Categories {
		for _, field := range sel.Fields {
			if v, ok := c.Value(category, field); ok {
				out = append(out, Spec{Category: category, Field: field, Value: v})
			}
		}
	}
	return out
}
