package api

import (
  "encoding/json"
  "net/http"
)

type ResponseHandler struct {
  Writer http.ResponseWriter
}

func (h *ResponseHandler) Json(data interface{}) {
  h.Writer.Header().Set("Content-Type", "application/json")
  h.Writer.WriteHeader(http.StatusOK)
  json.NewEncoder(h.Writer).Encode(data)
}

func (h *ResponseHandler) Raw(data []byte) {
  h.Writer.Header().Set("Content-Type", "application/json")
  h.Writer.WriteHeader(http.StatusOK)
  h.Writer.Write(data)
}

func (h *ResponseHandler) Error(status int, code int, message string) {
  h.Writer.Header().Set("Content-Type", "application/json")
  h.Writer.WriteHeader(status)
  json.NewEncoder(h.Writer).Encode(map[string]interface{}{
    "code":    code,
    "message": message,
  })
}
