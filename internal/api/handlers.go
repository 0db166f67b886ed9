package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"newsdigest/internal/domain"
	"newsdigest/internal/summarizer"
)

// Handler serves the engine and the digest service over HTTP.
type Handler struct {
	service      domain.DigestService
	summarizer   domain.Summarizer
	ranker       domain.KeywordRanker
	maxSentences int
	topK         int
	logger       *logrus.Logger
}

// NewHandler wires the handler; maxSentences and topK apply when a request
// omits them.
func NewHandler(service domain.DigestService, sum domain.Summarizer, ranker domain.KeywordRanker, maxSentences, topK int, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{service: service, summarizer: sum, ranker: ranker, maxSentences: maxSentences, topK: topK, logger: logger}
}

type summarizeRequest struct {
	Text         string `json:"text"`
	MaxSentences *int   `json:"max_sentences"`
}

type keywordsRequest struct {
	Text string `json:"text"`
	TopK *int   `json:"top_k"`
}

type digestRequest struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Content string `json:"content"`
}

func (h *Handler) Health(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	n := h.maxSentences
	if req.MaxSentences != nil {
		n = *req.MaxSentences
	}
	summary, err := h.summarizer.Summarize(req.Text, n)
	if err != nil {
		h.engineError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"summary": summary})
}

func (h *Handler) Keywords(c *gin.Context) {
	var req keywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	k := h.topK
	if req.TopK != nil {
		k = *req.TopK
	}
	kws, err := h.ranker.Rank(req.Text, k)
	if err != nil {
		h.engineError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"keywords": kws})
}

func (h *Handler) Digest(c *gin.Context) {
	var req digestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		badRequest(c, "content is required")
		return
	}
	digests, err := h.service.DigestArticles(c.Request.Context(), []domain.Article{{
		Title:   req.Title,
		Link:    req.Link,
		Source:  "api",
		Content: req.Content,
	}})
	if err != nil {
		h.engineError(c, err)
		return
	}
	ok(c, http.StatusCreated, digests[0])
}

func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		badRequest(c, "query parameter q is required")
		return
	}
	topK, err := intQuery(c, "top_k", 5)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := h.service.Query(q, topK)
	if err != nil {
		h.engineError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"query": q, "results": res})
}

func (h *Handler) Digests(c *gin.Context) {
	limit, err := intQuery(c, "limit", 20)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	digests, err := h.service.Recent(limit)
	if err != nil {
		h.engineError(c, err)
		return
	}
	if digests == nil {
		digests = []domain.Digest{}
	}
	ok(c, http.StatusOK, gin.H{"digests": digests})
}

func (h *Handler) engineError(c *gin.Context, err error) {
	if errors.Is(err, summarizer.ErrInvalidArgument) {
		badRequest(c, err.Error())
		return
	}
	h.logger.WithField("path", c.FullPath()).WithError(err).Error("request failed")
	internalError(c, "internal error")
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}
