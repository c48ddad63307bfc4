package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	nethttp "net/http"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/monitor_finder/app/finder/internal/biz"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/engine"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/query"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/report"
)

// SessionCookie 保存会话 ID 的 cookie
const SessionCookie = "finder_session"

const (
	OperationFinderStatus    = "/finder.v1.Finder/Status"
	OperationFinderCatalogue = "/finder.v1.Finder/Catalogue"
	OperationFinderSpecs     = "/finder.v1.Finder/Specs"
	OperationFinderCompare   = "/finder.v1.Finder/Compare"
	OperationFinderQuery     = "/finder.v1.Finder/Query"
	OperationFinderSearch    = "/finder.v1.Finder/Search"
	OperationFinderAnalyze   = "/finder.v1.Finder/Analyze"
	OperationFinderExport    = "/finder.v1.Finder/Export"
)

const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
	FormatTXT = "txt"
)

var contentTypes = map[string]string{
	FormatPDF: "application/pdf",
	FormatCSV: "text/csv; charset=utf-8",
	FormatTXT: "text/plain; charset=utf-8",
}

type FinderService struct {
	uc  *biz.FinderUseCase
	log *log.Helper
}

func NewFinderService(uc *biz.FinderUseCase, logger log.Logger) *FinderService {
	return &FinderService{uc: uc, log: log.NewHelper(logger)}
}

// RegisterFinderHTTPServer 注册 /api 路由
func RegisterFinderHTTPServer(s *http.Server, srv *FinderService) {
	r := s.Route("/")
	r.GET("/api/status", srv.Status)
	r.GET("/api/catalogue", srv.Catalogue)
	r.POST("/api/specs", srv.Specs)
	r.POST("/api/compare", srv.Compare)
	r.GET("/api/compare/export", srv.ExportComparison)
	r.GET("/api/report/export", srv.ExportReport)
	r.POST("/api/query", srv.Query)
	r.POST("/api/search", srv.Search)
	r.POST("/api/analysis", srv.Analyze)
	r.GET("/api/analysis/export", srv.ExportAnalysis)
}

// call 经过服务端中间件执行 fn，与生成代码的处理方式一致
func call(ctx http.Context, operation string, req interface{}, fn func(context.Context, interface{}) (interface{}, error)) (interface{}, error) {
	http.SetOperation(ctx, operation)
	h := ctx.Middleware(fn)
	return h(ctx, req)
}

// AnalysisTypeOption 分析类型下拉选项
type AnalysisTypeOption struct {
	Value analysis.Type `json:"value"`
	Label string        `json:"label"`
}

type FilterOptions struct {
	Resolutions   []query.Option   `json:"resolutions"`
	Panels        []string         `json:"panels"`
	RefreshRates  []string         `json:"refresh_rates"`
	ResponseTimes []string         `json:"response_times"`
	Features      []string         `json:"features"`
	Shops         []string         `json:"shops"`
	Price         query.PriceRange `json:"price"`
}

type CatalogueReply struct {
	Fields        []catalogue.Field    `json:"fields"`
	Categories    []catalogue.Category `json:"categories"`
	Filters       FilterOptions        `json:"filters"`
	AnalysisTypes []AnalysisTypeOption `json:"analysis_types"`
}

type AnalysisRequest struct {
	catalogue.Selection
	Type string `json:"type"`
}

type AnalysisReply struct {
	Type    analysis.Type `json:"type"`
	Subject string        `json:"subject"`
	Text    string        `json:"text"`
	Failed  bool          `json:"failed"`
}

func (s *FinderService) Status(ctx http.Context) error {
	out, err := call(ctx, OperationFinderStatus, nil, func(context.Context, interface{}) (interface{}, error) {
		return s.uc.Status(), nil
	})
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func (s *FinderService) Catalogue(ctx http.Context) error {
	out, err := call(ctx, OperationFinderCatalogue, nil, func(context.Context, interface{}) (interface{}, error) {
		cat := s.uc.Catalogue()
		reply := &CatalogueReply{
			Fields:     cat.Fields(),
			Categories: cat.Categories(),
			Filters: FilterOptions{
				Resolutions:   query.Resolutions,
				Panels:        query.Panels,
				RefreshRates:  query.RefreshRates,
				ResponseTimes: query.ResponseTimes,
				Features:      query.Features,
				Shops:         query.Shops,
				Price:         query.PriceRange{Min: query.MinPrice, Max: query.MaxPrice},
			},
		}
		for _, t := range analysis.Types {
			reply.AnalysisTypes = append(reply.AnalysisTypes, AnalysisTypeOption{Value: t, Label: t.Label()})
		}
		return reply, nil
	})
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func (s *FinderService) Specs(ctx http.Context) error {
	var in catalogue.Selection
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	out, err := call(ctx, OperationFinderSpecs, &in, func(_ context.Context, req interface{}) (interface{}, error) {
		return s.uc.Specs(*req.(*catalogue.Selection))
	})
	if err != nil {
		return toError(err)
	}
	return ctx.Result(200, out)
}

func (s *FinderService) Compare(ctx http.Context) error {
	var in catalogue.Selection
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	out, err := call(ctx, OperationFinderCompare, &in, func(_ context.Context, req interface{}) (interface{}, error) {
		return s.uc.Compare(*req.(*catalogue.Selection))
	})
	if err != nil {
		return toError(err)
	}
	return ctx.Result(200, out)
}

func (s *FinderService) Query(ctx http.Context) error {
	var in engine.QueryOptions
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	out, err := call(ctx, OperationFinderQuery, &in, func(c context.Context, req interface{}) (interface{}, error) {
		return s.uc.BuildQuery(c, *req.(*engine.QueryOptions))
	})
	if err != nil {
		return toError(err)
	}
	return ctx.Result(200, out)
}

func (s *FinderService) Search(ctx http.Context) error {
	var in engine.SearchOptions
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	out, err := call(ctx, OperationFinderSearch, &in, func(c context.Context, req interface{}) (interface{}, error) {
		return s.uc.Search(c, *req.(*engine.SearchOptions))
	})
	if err != nil {
		s.log.Warnf("search request failed: %v", err)
		return toError(err)
	}
	return ctx.Result(200, out)
}

func (s *FinderService) Analyze(ctx http.Context) error {
	var in AnalysisRequest
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	t, err := analysis.ParseType(in.Type)
	if err != nil {
		return kerrors.BadRequest("INVALID_ANALYSIS_TYPE", err.Error())
	}

	sessionID := sessionFrom(ctx.Request())
	if sessionID == "" {
		sessionID = uuid.NewString()
		nethttp.SetCookie(ctx.Response(), &nethttp.Cookie{
			Name:     SessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: nethttp.SameSiteLaxMode,
		})
	}

	out, err := call(ctx, OperationFinderAnalyze, &in, func(c context.Context, req interface{}) (interface{}, error) {
		res, err := s.uc.Analyze(c, sessionID, req.(*AnalysisRequest).Selection, t)
		if err != nil {
			return nil, err
		}
		return &AnalysisReply{
			Type:    res.Type,
			Subject: analysis.Subject(res.Type, res.Categories),
			Text:    res.Text,
			Failed:  res.Failed,
		}, nil
	})
	if err != nil {
		return toError(err)
	}
	return ctx.Result(200, out)
}

// ExportReport GET /api/report/export?format=pdf|csv|txt&category=..&field=..
func (s *FinderService) ExportReport(ctx http.Context) error {
	format, err := exportFormat(ctx, FormatPDF, FormatPDF, FormatCSV, FormatTXT)
	if err != nil {
		return err
	}
	sel := selectionFrom(ctx)

	out, err := call(ctx, OperationFinderExport, &sel, func(_ context.Context, req interface{}) (interface{}, error) {
		doc, err := s.uc.Specs(*req.(*catalogue.Selection))
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		switch format {
		case FormatPDF:
			err = report.WritePDF(&buf, doc)
		case FormatCSV:
			err = report.WriteCSV(&buf, doc)
		default:
			err = report.WriteText(&buf, doc)
		}
		return buf.Bytes(), err
	})
	if err != nil {
		return toError(err)
	}
	return download(ctx, "specificatii_monitoare."+format, format, out.([]byte))
}

// ExportComparison GET /api/compare/export?format=csv|txt&category=..&field=..
func (s *FinderService) ExportComparison(ctx http.Context) error {
	format, err := exportFormat(ctx, FormatCSV, FormatCSV, FormatTXT)
	if err != nil {
		return err
	}
	sel := selectionFrom(ctx)

	out, err := call(ctx, OperationFinderExport, &sel, func(_ context.Context, req interface{}) (interface{}, error) {
		cmp, err := s.uc.Compare(*req.(*catalogue.Selection))
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if format == FormatCSV {
			err = report.WriteComparisonCSV(&buf, cmp)
		} else {
			err = report.WriteComparisonText(&buf, cmp)
		}
		return buf.Bytes(), err
	})
	if err != nil {
		return toError(err)
	}
	return download(ctx, "comparatie_monitoare."+format, format, out.([]byte))
}

// ExportAnalysis GET /api/analysis/export?format=pdf|txt
func (s *FinderService) ExportAnalysis(ctx http.Context) error {
	format, err := exportFormat(ctx, FormatPDF, FormatPDF, FormatTXT)
	if err != nil {
		return err
	}
	sessionID := sessionFrom(ctx.Request())

	var name string
	out, err := call(ctx, OperationFinderExport, nil, func(c context.Context, _ interface{}) (interface{}, error) {
		doc, err := s.uc.AnalysisDocument(c, sessionID)
		if err != nil {
			return nil, err
		}
		name = report.AnalysisFileName(doc.Type, format)
		var buf bytes.Buffer
		if format == FormatPDF {
			err = report.WriteAnalysisPDF(&buf, doc)
		} else {
			err = report.WriteAnalysisText(&buf, doc)
		}
		return buf.Bytes(), err
	})
	if err != nil {
		return toError(err)
	}
	return download(ctx, name, format, out.([]byte))
}

func exportFormat(ctx http.Context, def string, allowed ...string) (string, error) {
	format := ctx.Query().Get("format")
	if format == "" {
		return def, nil
	}
	for _, f := range allowed {
		if f == format {
			return format, nil
		}
	}
	return "", kerrors.BadRequest("INVALID_FORMAT", fmt.Sprintf("unsupported export format %q", format))
}

func selectionFrom(ctx http.Context) catalogue.Selection {
	q := ctx.Query()
	return catalogue.Selection{Categories: q["category"], Fields: q["field"]}
}

func sessionFrom(r *nethttp.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func download(ctx http.Context, name, format string, data []byte) error {
	ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	return ctx.Blob(200, contentTypes[format], data)
}

// toError 把领域错误映射为 kratos 错误
func toError(err error) error {
	switch {
	case errors.Is(err, engine.ErrSearchUnavailable), errors.Is(err, engine.ErrGeneratorUnavailable):
		return kerrors.ServiceUnavailable("CONFIG_MISSING", err.Error())
	case errors.Is(err, engine.ErrSearchFailed):
		return kerrors.New(nethttp.StatusBadGateway, "SEARCH_FAILED", err.Error())
	case errors.Is(err, engine.ErrEmptySelection),
		errors.Is(err, catalogue.ErrUnknownCategory),
		errors.Is(err, catalogue.ErrUnknownField),
		errors.Is(err, query.ErrInvalidFilter):
		return kerrors.BadRequest("INVALID_SELECTION", err.Error())
	case errors.Is(err, biz.ErrAnalysisNotFound):
		return kerrors.NotFound("ANALYSIS_NOT_FOUND", err.Error())
	}
	return err
}
