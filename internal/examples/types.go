package examples

// a canned translation keyed by a trigger phrase
type Translation struct {
	Trigger string `yaml:"trigger"`
	Code    string `yaml:"code"`
}

// the embedded catalog file
type Catalog struct {
	Prompts      []string      `yaml:"prompts"`
	Translations []Translation `yaml:"translations"`
}
