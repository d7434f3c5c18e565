package dto

import (
	"github.com/zintix-labs/tosslab"
)

// Section wraps one part of a report with the filter that produced it.
type Section[T any] struct {
	Filter  tosslab.Filter `json:"filter"`
	Records int            `json:"records"`
	Data    T              `json:"data"`
}

func NewSection[T any](f tosslab.Filter, rep *tosslab.Report, data T) Section[T] {
	return Section[T]{Filter: f, Records: rep.Summary.TotalMatches, Data: data}
}

// Health is the body of /healthz.
type Health struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}
