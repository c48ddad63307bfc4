package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Finder *Finder
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Session *Session
}

// Session 分析结果按会话保存在内存中
type Session struct {
	Ttl string `json:"ttl"`
}

type Finder struct {
	Llm         *LLM         `json:"llm"`
	Search      *Search      `json:"search"`
	Report      *Report      `json:"report"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	Provider string `json:"provider"`
	BaseUrl  string `json:"base_url"`
	ApiKey   string `json:"api_key"`
	Model    string `json:"model"`
	Timeout  int32  `json:"timeout"`
}

type Search struct {
	Provider     string   `json:"provider"`
	ResultLimit  int32    `json:"result_limit"`
	EnrichLimit  int32    `json:"enrich_limit"`
	FetchTimeout int32    `json:"fetch_timeout"`
	Serper       *Serper  `json:"serper"`
	Tavily       *Tavily  `json:"tavily"`
	Searxng      *SearXNG `json:"searxng"`
}

type Serper struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Tavily struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Report struct {
	Title  string `json:"title"`
	Footer string `json:"footer"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
