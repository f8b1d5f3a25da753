package ofximport

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"regexp"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var headerLinePattern = regexp.MustCompile(`^\s*([A-Za-z0-9_.]+)\s*:\s*(.*?)\s*$`)

// Document is an OFX file split into its SGML header and its markup.
type Document struct {
	// Header holds the OFX 1.x "KEY:VALUE" header lines, keys upper-cased. Empty for OFX 2.x.
	Header map[string]string
	// Markup is the document body decoded to UTF-8.
	Markup string
}

// ReadDocument reads an OFX document and decodes its body according to the header's CHARSET.
// Read errors are the only errors returned.
func ReadDocument(reader io.Reader) (*Document, error) {
	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	header, body := SplitHeader(data)
	if enc := headerEncoding(header); enc != nil {
		if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
			body = decoded
		} else {
			glog.V(1).Infof("could not decode body as %s, using raw bytes: %v", header["CHARSET"], err)
		}
	}
	return &Document{Header: header, Markup: string(body)}, nil
}

// Tree parses the document's markup with the given builder.
func (d *Document) Tree(builder TreeBuilder) *Node {
	return builder.Build([]byte(d.Markup))
}

// String returns a short description of the document for logging.
func (d *Document) String() string {
	return fmt.Sprintf("OFX version %q, %d bytes of markup", d.Header["VERSION"], len(d.Markup))
}

// SplitHeader splits data at the first '<' into the parsed header lines and the markup. Data
// without markup is all header and has a nil body.
func SplitHeader(data []byte) (map[string]string, []byte) {
	header := make(map[string]string)
	i := bytes.IndexByte(data, '<')
	if i == -1 {
		i = len(data)
	}
	for _, line := range strings.Split(string(data[:i]), "\n") {
		if m := headerLinePattern.FindStringSubmatch(line); m != nil {
			header[strings.ToUpper(m[1])] = m[2]
		}
	}
	if i == len(data) {
		return header, nil
	}
	return header, data[i:]
}

// StripHeader returns data without its OFX 1.x header.
func StripHeader(data []byte) []byte {
	_, body := SplitHeader(data)
	return body
}

// headerEncoding returns the encoding declared by an OFX 1.x header, or nil for UTF-8 and
// unknown or absent charsets.
func headerEncoding(header map[string]string) encoding.Encoding {
	if strings.EqualFold(header["ENCODING"], "UTF-8") {
		return nil
	}
	cs := strings.ToUpper(header["CHARSET"])
	switch cs {
	case "", "NONE":
		return nil
	case "1252", "WINDOWS-1252":
		return charmap.Windows1252
	case "ISO-8859-1", "8859-1", "LATIN-1":
		return charmap.ISO8859_1
	}
	enc, name := charset.Lookup(cs)
	if enc == nil {
		glog.V(1).Infof("unknown OFX charset %s", cs)
		return nil
	}
	glog.V(3).Infof("charset %s resolved to %s", cs, name)
	return enc
}
