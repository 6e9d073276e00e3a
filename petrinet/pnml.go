package petrinet

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/gozdd/ydd/zdd"
)

// nsStrippingDecoder wraps an *xml.Decoder and clears every element and
// attribute's namespace, so struct tags can match PNML's local element
// names regardless of which namespace URI the document declares
// mirroring the "stripping all namespaces" approach PNML loaders
// conventionally take so parsing doesn't depend on which namespace URI
// a given exporter chose to declare.
type nsStrippingDecoder struct {
	d *xml.Decoder
}

func (r *nsStrippingDecoder) Token() (xml.Token, error) {
	t, err := r.d.Token()
	if err != nil {
		return t, err
	}
	switch el := t.(type) {
	case xml.StartElement:
		el.Name.Space = ""
		for i := range el.Attr {
			el.Attr[i].Name.Space = ""
		}
		return el, nil
	case xml.EndElement:
		el.Name.Space = ""
		return el, nil
	}
	return t, nil
}

type pnmlDocument struct {
	Nets []pnmlNet `xml:"net"`
}

type pnmlNet struct {
	ID          string           `xml:"id,attr"`
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
}

type pnmlPlace struct {
	ID             string    `xml:"id,attr"`
	Name           pnmlText  `xml:"name"`
	InitialMarking *pnmlText `xml:"initialMarking"`
}

type pnmlTransition struct {
	ID   string   `xml:"id,attr"`
	Name pnmlText `xml:"name"`
}

type pnmlArc struct {
	Source      string    `xml:"source,attr"`
	Target      string    `xml:"target,attr"`
	Inscription *pnmlText `xml:"inscription"`
}

type pnmlText struct {
	Text string `xml:"text"`
}

// ParsePNML reads a PNML document and returns one Safe net per <net>
// element, keyed by the net's id attribute. engine backs every
// returned net. Places with an initial marking greater than one yield
// ErrNotOneSafe; a malformed document yields ErrParse.
func ParsePNML(engine *zdd.Engine[int], r io.Reader) (map[string]*Safe, error) {
	dec := xml.NewTokenDecoder(&nsStrippingDecoder{d: xml.NewDecoder(r)})
	var doc pnmlDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	nets := make(map[string]*Safe, len(doc.Nets))
	for _, net := range doc.Nets {
		safe, err := safeFromPNMLNet(engine, net)
		if err != nil {
			return nil, err
		}
		nets[net.ID] = safe
	}
	return nets, nil
}

func safeFromPNMLNet(engine *zdd.Engine[int], net pnmlNet) (*Safe, error) {
	numFromID := make(map[string]int, len(net.Places))
	tokensFromNum := make(map[int]int, len(net.Places))
	placeNames := make(map[int]string, len(net.Places))

	for num, place := range net.Places {
		tokens := 0
		if place.InitialMarking != nil && place.InitialMarking.Text != "" {
			v, err := strconv.Atoi(place.InitialMarking.Text)
			if err != nil {
				return nil, fmt.Errorf("%w: place %q initial marking: %v", ErrParse, place.ID, err)
			}
			tokens = v
		}
		if tokens > 1 {
			return nil, fmt.Errorf("%w: place %q has %d tokens", ErrNotOneSafe, place.ID, tokens)
		}
		numFromID[place.ID] = num
		tokensFromNum[num] = tokens
		placeNames[num] = place.Name.Text
	}

	var m0 []int
	for num, tokens := range tokensFromNum {
		if tokens > 0 {
			m0 = append(m0, num)
		}
	}

	transitionNames := make(map[string]string, len(net.Transitions))
	for _, trans := range net.Transitions {
		transitionNames[trans.ID] = trans.Name.Text
	}

	pre := make(map[string][]int, len(transitionNames))
	post := make(map[string][]int, len(transitionNames))
	for _, name := range transitionNames {
		pre[name] = make([]int, len(tokensFromNum))
		post[name] = make([]int, len(tokensFromNum))
	}

	for _, arc := range net.Arcs {
		tokens := 1
		if arc.Inscription != nil && arc.Inscription.Text != "" {
			v, err := strconv.Atoi(arc.Inscription.Text)
			if err != nil {
				return nil, fmt.Errorf("%w: arc %s->%s inscription: %v", ErrParse, arc.Source, arc.Target, err)
			}
			tokens = v
		}

		if placeNum, ok := numFromID[arc.Source]; ok {
			transName, ok := transitionNames[arc.Target]
			if !ok {
				return nil, fmt.Errorf("%w: arc references unknown transition %q", ErrParse, arc.Target)
			}
			pre[transName][placeNum] = tokens
		} else {
			transName, ok := transitionNames[arc.Source]
			if !ok {
				return nil, fmt.Errorf("%w: arc references unknown place or transition %q", ErrParse, arc.Source)
			}
			placeNum, ok := numFromID[arc.Target]
			if !ok {
				return nil, fmt.Errorf("%w: arc references unknown place %q", ErrParse, arc.Target)
			}
			post[transName][placeNum] = tokens
		}
	}

	return NewSafe(engine, pre, post, m0, placeNames), nil
}
