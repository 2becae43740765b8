package shared

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"

	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
)

// Parser converts a scan artifact into normalized output.
type Parser interface {
	Setup(configData config.Config) (bool, error)
	Parse(args ParserParseRequest) (ParserParseResponse, error)
}

// ParserParseRequest represents a single parse request.
type ParserParseRequest struct {
	InputPath    string // Path to the scan artifact, a zip container or a bare JSON document
	OutputFormat string // jsonl, sarif or postgres
	OutputPath   string // File or folder for file based formats, "-" for stdout
	Generation   string // Vocabulary generation, overrides the configured one when set
	Policy       string // Per-finding failure policy, overrides the configured one when set
	MetadataOnly bool   // Stop after the scan metadata pass
}

// ParserParseResponse summarises a finished parse.
type ParserParseResponse struct {
	Document   string
	EngineType string
	Findings   int
	Skipped    int
	Written    int
}

type ParserRPCClient struct{ client *rpc.Client }

func (g *ParserRPCClient) Setup(configData config.Config) (bool, error) {
	var resp bool
	err := g.client.Call("Plugin.Setup", configData, &resp)
	if err != nil {
		return false, err
	}
	return resp, nil
}

func (g *ParserRPCClient) Parse(req ParserParseRequest) (ParserParseResponse, error) {
	var resp ParserParseResponse

	err := g.client.Call("Plugin.Parse", req, &resp)
	if err != nil {
		return resp, err
	}

	return resp, nil
}

type ParserRPCServer struct {
	Impl Parser
}

func (s *ParserRPCServer) Setup(configData config.Config, resp *bool) error {
	var err error
	*resp, err = s.Impl.Setup(configData)
	return err
}

func (s *ParserRPCServer) Parse(args ParserParseRequest, resp *ParserParseResponse) error {
	var err error
	*resp, err = s.Impl.Parse(args)
	return err
}

type ParserPlugin struct {
	Impl Parser
}

func (p *ParserPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &ParserRPCServer{Impl: p.Impl}, nil
}

func (ParserPlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &ParserRPCClient{client: c}, nil
}
