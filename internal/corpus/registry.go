package corpus

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed data/intents.yaml
var defaultCorpus []byte

// nearbyGroup names the landmark phrasing inside the listing section.
const nearbyGroup = "nearby"

var (
	ErrUnknownTag  = errors.New("unknown intent tag")
	ErrEmptyCorpus = errors.New("empty corpus")
)

// Corpus is the ordered example phrases of one intent.
type Corpus struct {
	Tag     Tag      `yaml:"tag"`
	Phrases []string `yaml:"phrases"`
}

type document struct {
	Version int      `yaml:"version"`
	Corpora []Corpus `yaml:"corpora"`
	Nearby  Corpus   `yaml:"nearby"`
	Listing []string `yaml:"listing"`
}

// Registry maps intent tags to example phrases. It is read-only once built.
type Registry struct {
	version int
	corpora []Corpus
	byTag   map[Tag]map[string]bool
	all     []string
	listing []string
	// normalized phrase -> owning tag, for verbatim listing lookups
	listingTag map[string]Tag
}

// Default returns the registry compiled into the binary.
func Default() (*Registry, error) {
	return Parse(defaultCorpus)
}

// Load reads a registry from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML. Every tag except Unknown must be present
// and non-empty.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}

	r := &Registry{
		version:    doc.Version,
		byTag:      make(map[Tag]map[string]bool),
		listingTag: make(map[string]Tag),
	}

	seenAll := make(map[string]bool)
	for _, c := range doc.Corpora {
		if !c.Tag.valid() || c.Tag == Unknown {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, c.Tag)
		}
		if _, dup := r.byTag[c.Tag]; dup {
			return nil, fmt.Errorf("corpus %q declared twice", c.Tag)
		}
		phrases := cleanPhrases(c.Phrases)
		if len(phrases) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyCorpus, c.Tag)
		}

		set := make(map[string]bool, len(phrases))
		for _, p := range phrases {
			set[p] = true
			if !seenAll[p] {
				seenAll[p] = true
				r.all = append(r.all, p)
			}
		}
		r.byTag[c.Tag] = set
		r.corpora = append(r.corpora, Corpus{Tag: c.Tag, Phrases: phrases})
	}

	for _, tag := range Tags() {
		if tag == Unknown {
			continue
		}
		if _, ok := r.byTag[tag]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrEmptyCorpus, tag)
		}
	}

	nearby := cleanPhrases(doc.Nearby.Phrases)
	if len(nearby) > 0 && !doc.Nearby.Tag.valid() {
		return nil, fmt.Errorf("%w: nearby tag %q", ErrUnknownTag, doc.Nearby.Tag)
	}

	for _, group := range doc.Listing {
		var tag Tag
		var phrases []string
		if group == nearbyGroup {
			tag, phrases = doc.Nearby.Tag, nearby
		} else {
			tag = Tag(group)
			if _, ok := r.byTag[tag]; !ok {
				return nil, fmt.Errorf("%w: listing group %q", ErrUnknownTag, group)
			}
			phrases = r.Phrases(tag)
		}
		for _, p := range phrases {
			key := Normalize(p)
			if _, ok := r.listingTag[key]; ok {
				continue
			}
			r.listingTag[key] = tag
			r.listing = append(r.listing, p)
		}
	}

	return r, nil
}

// Version is the data table version declared in the corpus file.
func (r *Registry) Version() int {
	return r.version
}

// Corpora returns the intent corpora in declaration order.
func (r *Registry) Corpora() []Corpus {
	out := make([]Corpus, len(r.corpora))
	copy(out, r.corpora)
	return out
}

// Phrases returns the phrases of one intent, nil if the tag has none.
func (r *Registry) Phrases(tag Tag) []string {
	for _, c := range r.corpora {
		if c.Tag == tag {
			out := make([]string, len(c.Phrases))
			copy(out, c.Phrases)
			return out
		}
	}
	return nil
}

// Contains reports whether phrase is, verbatim, one of tag's examples.
func (r *Registry) Contains(tag Tag, phrase string) bool {
	return r.byTag[tag][phrase]
}

// All is every scored phrase in corpus order, without duplicates.
func (r *Registry) All() []string {
	out := make([]string, len(r.all))
	copy(out, r.all)
	return out
}

// Listing is the meta-corpus answered directly from the venue list.
func (r *Registry) Listing() []string {
	out := make([]string, len(r.listing))
	copy(out, r.listing)
	return out
}

// ListingTag returns the tag for an input found verbatim in the listing corpus.
func (r *Registry) ListingTag(input string) (Tag, bool) {
	tag, ok := r.listingTag[Normalize(input)]
	return tag, ok
}

var folder = cases.Fold()

// Normalize trims, composes (NFC) and case-folds s so that lookups ignore
// surrounding whitespace, Unicode composition and letter case.
func Normalize(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

func cleanPhrases(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = norm.NFC.String(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
