package discovery

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// CmdDiscover is the cmd attribute of a discovery request
	CmdDiscover = "discover"
	// ElementName is the root element of every discovery datagram
	ElementName = "BDP1"
	// xmlProlog precedes the request element on the wire
	xmlProlog = `<?xml version="1.0"?>`
)

// MaxMessageSize is the largest datagram read while waiting for a reply
const MaxMessageSize = 2048

// Request is the broadcast discovery payload (XML encoded)
type Request struct {
	XMLName     xml.Name `xml:"BDP1"`
	Cmd         string   `xml:"cmd,attr"`
	Application string   `xml:"application,attr"`
	Version     string   `xml:"version,attr"`
	Challenge   string   `xml:"challenge,attr"`
	Signature   string   `xml:"signature,attr"`
}

// Marshal encodes the request with its XML prolog.
func (r Request) Marshal() ([]byte, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal discovery request: %w", err)
	}
	return append([]byte(xmlProlog), body...), nil
}

// Reply holds the attributes the box answers with
type Reply struct {
	Cmd          string
	Application  string
	Version      string
	Name         string
	HTTPPort     int
	AuthRequired bool
	Response     string
	Signature    string
}

// ParseReply finds the first BDP1 element in data and reads its attributes.
// The element may be the document root or nested inside another element.
func ParseReply(data []byte) (Reply, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return Reply{}, fmt.Errorf("%w: no %s element", ErrNoHTTPPort, ElementName)
		}
		if err != nil {
			return Reply{}, fmt.Errorf("%w: %v", ErrNoHTTPPort, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != ElementName {
			continue
		}
		return replyFromAttrs(start.Attr)
	}
}

func replyFromAttrs(attrs []xml.Attr) (Reply, error) {
	var reply Reply
	var port string
	for _, a := range attrs {
		switch a.Name.Local {
		case "cmd":
			reply.Cmd = a.Value
		case "application":
			reply.Application = a.Value
		case "version":
			reply.Version = a.Value
		case "name":
			reply.Name = a.Value
		case "httpPort":
			port = a.Value
		case "httpAuthRequired":
			reply.AuthRequired = a.Value == "true"
		case "response":
			reply.Response = a.Value
		case "signature":
			reply.Signature = a.Value
		}
	}

	if port == "" {
		return Reply{}, fmt.Errorf("%w: %s has no httpPort", ErrNoHTTPPort, ElementName)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return Reply{}, fmt.Errorf("%w: invalid httpPort %q", ErrNoHTTPPort, port)
	}
	reply.HTTPPort = n
	return reply, nil
}
