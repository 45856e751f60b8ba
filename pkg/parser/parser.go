package parser

import (
	"github.com/charmbracelet/log"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.Default()
	}
	return &Parser{
		logger: logger,
	}
}
