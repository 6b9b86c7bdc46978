package http

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"recycle-sorter/domain"
	"recycle-sorter/service"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"weight": func(w float64) string { return strconv.FormatFloat(w, 'f', -1, 64) },
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
	"recyclableClass": func(b bool) string {
		if b {
			return "recyclable-yes"
		}
		return "recyclable-no"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Recycling Sorter</title>
<style>
body { font-family: sans-serif; max-width: 40em; margin: 2em auto; }
li { display: flex; justify-content: space-between; padding: .3em 0; }
.error { color: #b00020; }
.recyclable-yes { color: #2e7d32; }
.recyclable-no { color: #c62828; }
</style>
</head>
<body>
<h1>Recycling Sorter</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/">
<input id="itemName" name="name" placeholder="Item name" value="{{.Name}}">
<input id="itemWeight" name="weight" placeholder="Weight (kg)" value="{{.Weight}}">
<button id="classifyBtn" type="submit">Classify</button>
</form>
<ul id="itemList">
{{range .Entries}}<li>
<span>{{.Item.Name}} ({{weight .Item.Weight}} kg) &rarr; <strong>{{.Item.Category}}</strong></span>
<span class="{{recyclableClass .Item.Recyclable}}">Recyclable: {{yesno .Item.Recyclable}}</span>
</li>
{{end}}</ul>
</body>
</html>
`))

type pageData struct {
	Error   string
	Name    string
	Weight  string
	Entries []domain.ListEntry
}

// PageHandler renders the HTML list and handles the form post.
type PageHandler struct {
	service *service.SortingService
	logger  *slog.Logger
}

func NewPageHandler(service *service.SortingService, logger *slog.Logger) *PageHandler {
	return &PageHandler{service: service, logger: logger}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.render(w, r, http.StatusOK, pageData{})
	case http.MethodPost:
		h.submit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PageHandler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	input := domain.ClassifyInput{
		Name:   r.PostForm.Get("name"),
		Weight: r.PostForm.Get("weight"),
	}

	_, err := h.service.Classify(r.Context(), input)
	if errors.Is(err, domain.ErrInvalidInput) {
		h.render(w, r, http.StatusBadRequest, pageData{
			Error:  domain.InvalidInputMessage,
			Name:   input.Name,
			Weight: input.Weight,
		})
		return
	}
	if err != nil {
		h.logger.Error("classifying item", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Redirect so the form comes back empty and a reload does not resubmit.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("listing items", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	data.Entries = entries

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("rendering page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("writing page", "error", err)
	}
}

func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
