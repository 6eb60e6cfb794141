package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/batch"
	"github.com/spigell/resume-analyzer/internal/logger"
)

const (
	fieldJobTitle = "job_title"
	fieldFiles    = "files"
)

type page struct {
	JobTitle string
	Output   string
}

type resultDTO struct {
	Index    int    `json:"index"`
	File     string `json:"file"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

type analyzeResponse struct {
	RequestID string      `json:"request_id"`
	Results   []resultDTO `json:"results"`
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", page{})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) analyzeForm(c *gin.Context) {
	jobTitle, uploads, err := s.readForm(c)
	if err != nil {
		s.logger.Warn("reading upload form", zap.Error(err), logger.RequestID(GetRequestID(c)))
		c.HTML(http.StatusBadRequest, "index.html", page{JobTitle: jobTitle, Output: "Error - " + err.Error()})
		return
	}

	results, err := s.processor.ProcessUploads(c.Request.Context(), uploads, jobTitle)
	if err != nil {
		c.HTML(http.StatusOK, "index.html", page{JobTitle: jobTitle, Output: guardOrError(err)})
		return
	}

	c.HTML(http.StatusOK, "index.html", page{JobTitle: jobTitle, Output: batch.FormReport(results)})
}

func (s *Server) analyzeAPI(c *gin.Context) {
	jobTitle, uploads, err := s.readForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": GetRequestID(c)})
		return
	}

	results, err := s.processor.ProcessUploads(c.Request.Context(), uploads, jobTitle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": guardOrError(err), "request_id": GetRequestID(c)})
		return
	}

	resp := analyzeResponse{
		RequestID: GetRequestID(c),
		Results:   make([]resultDTO, 0, len(results)),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, resultDTO{
			Index:    r.Index,
			File:     r.File,
			Analysis: r.Analysis,
			Error:    r.ErrorMessage(),
		})
	}

	c.JSON(http.StatusOK, resp)
}

// readForm returns the job title and every uploaded file. A request without
// files is not an error here; the processor reports it.
func (s *Server) readForm(c *gin.Context) (string, []batch.Upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return c.PostForm(fieldJobTitle), nil, nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, fmt.Errorf("upload exceeds %d bytes", maxErr.Limit)
		}
		return "", nil, fmt.Errorf("parse multipart form: %w", err)
	}

	jobTitle := ""
	if values := form.Value[fieldJobTitle]; len(values) > 0 {
		jobTitle = values[0]
	}

	headers := form.File[fieldFiles]
	uploads := make([]batch.Upload, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			return jobTitle, nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, batch.Upload{Name: fh.Filename, Data: data})
	}

	return jobTitle, uploads, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func guardOrError(err error) string {
	if msg := batch.GuardMessage(err); msg != "" {
		return msg
	}
	return "Error - " + err.Error()
}
