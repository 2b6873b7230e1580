package eventfile

import "sort"

// Kind identifies a recognized object-collection kind. The enumeration
// is closed: it is the event file schema, compiled into the validator.
type Kind int

const (
	KindTracks Kind = iota
	KindJets
	KindHits
	KindCaloClusters
	KindCaloCells
	KindPlanarCaloCells
	KindVertices
	KindMissingEnergy
	KindMuons
	KindPhotons
	KindElectrons
)

var kindStrings = map[Kind]string{
	KindTracks:          "Tracks",
	KindJets:            "Jets",
	KindHits:            "Hits",
	KindCaloClusters:    "CaloClusters",
	KindCaloCells:       "CaloCells",
	KindPlanarCaloCells: "PlanarCaloCells",
	KindVertices:        "Vertices",
	KindMissingEnergy:   "MissingEnergy",
	KindMuons:           "Muons",
	KindPhotons:         "Photons",
	KindElectrons:       "Electrons",
}

// String returns the kind's collection key as it appears in event
// entries, e.g. "Tracks".
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "Kind(unknown)"
}

// Kinds returns all recognized collection kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindTracks, KindJets, KindHits, KindCaloClusters, KindCaloCells,
		KindPlanarCaloCells, KindVertices, KindMissingEnergy,
		KindMuons, KindPhotons, KindElectrons,
	}
}

// KindByName resolves a collection key to its kind.
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindStrings))
	for k, name := range kindStrings {
		m[name] = k
	}
	return m
}()

// FieldType describes the expected shape of a record field.
type FieldType int

const (
	// Number is a single finite JSON number.
	Number FieldType = iota
	// String is a JSON string (colors are currently plain strings).
	String
	// NumberTuple is an array of exactly Arity finite numbers.
	NumberTuple
	// TripleList is an array of [x, y, z] number triples.
	TripleList
	// HitType is one of the strings "Point", "Line" or "Box".
	HitType
	// CellList is an array of planar calorimeter cell records.
	CellList
)

// Field is one entry of a kind's record contract.
type Field struct {
	Name     string
	Required bool
	Type     FieldType
	Arity    int // tuple length for NumberTuple fields
}

// recordCheck validates one element of a collection and records any
// deviations in the ledger.
type recordCheck func(v any, path Path, led *Ledger)

// contract binds a kind to its record contract. A nil record check
// means elements are accepted as-is (compound kinds).
type contract struct {
	fields []Field
	record recordCheck
}

// metadataKeys are event-level bookkeeping entries. They are checked to
// be numeric and otherwise ignored structurally.
var metadataKeys = map[string]bool{
	"event number": true,
	"run number":   true,
}

// MetadataKeys returns the recognized event metadata keys, sorted.
func MetadataKeys() []string {
	keys := make([]string, 0, len(metadataKeys))
	for k := range metadataKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	trackFields = []Field{
		{Name: "pos", Required: true, Type: TripleList},
		{Name: "color", Type: String},
		{Name: "dparams", Type: NumberTuple, Arity: 5},
		{Name: "d0", Type: Number},
		{Name: "z0", Type: Number},
		{Name: "phi", Type: Number},
		{Name: "eta", Type: Number},
	}

	jetFields = []Field{
		{Name: "eta", Required: true, Type: Number},
		{Name: "phi", Required: true, Type: Number},
		{Name: "theta", Type: Number},
		{Name: "energy", Type: Number},
		{Name: "et", Type: Number},
		{Name: "coneR", Type: Number},
		{Name: "color", Type: String},
	}

	// hitFields is the object form of a hit; the coordinate arity of
	// "pos" additionally depends on "type" (3 for Point, 6 otherwise)
	// and is cross-checked by checkHitRecord.
	hitFields = []Field{
		{Name: "pos", Required: true, Type: NumberTuple, Arity: -1},
		{Name: "type", Type: HitType},
		{Name: "color", Type: String},
	}

	caloFields = []Field{
		{Name: "energy", Required: true, Type: Number},
		{Name: "phi", Required: true, Type: Number},
		{Name: "eta", Required: true, Type: Number},
	}

	planarCaloFields = []Field{
		{Name: "plane", Required: true, Type: NumberTuple, Arity: 4},
		{Name: "cells", Required: true, Type: CellList},
	}

	planarCellFields = []Field{
		{Name: "cellSize", Required: true, Type: Number},
		{Name: "energy", Required: true, Type: Number},
		{Name: "pos", Required: true, Type: NumberTuple, Arity: 2},
		{Name: "color", Type: String},
	}

	vertexFields = []Field{
		{Name: "x", Required: true, Type: Number},
		{Name: "y", Required: true, Type: Number},
		{Name: "z", Required: true, Type: Number},
		{Name: "color", Type: String},
	}

	missingEFields = []Field{
		{Name: "etx", Required: true, Type: Number},
		{Name: "ety", Required: true, Type: Number},
		{Name: "color", Type: String},
	}
)

// contracts is the fixed, read-only registry of per-kind record
// contracts. It is built once at init and never mutated.
var contracts = map[Kind]contract{
	KindTracks:          {fields: trackFields, record: objectRecord("track", trackFields)},
	KindJets:            {fields: jetFields, record: objectRecord("jet", jetFields)},
	KindHits:            {fields: hitFields, record: checkHitRecord},
	KindCaloClusters:    {fields: caloFields, record: objectRecord("calo cluster", caloFields)},
	KindCaloCells:       {fields: caloFields, record: objectRecord("calo cell", caloFields)},
	KindPlanarCaloCells: {fields: planarCaloFields, record: objectRecord("planar calo cells", planarCaloFields)},
	KindVertices:        {fields: vertexFields, record: objectRecord("vertex", vertexFields)},
	KindMissingEnergy:   {fields: missingEFields, record: objectRecord("missing energy", missingEFields)},

	// Compound physics objects carry nested collections of their own;
	// their internals are not checked yet, matching the reference
	// format definition.
	KindMuons:     {},
	KindPhotons:   {},
	KindElectrons: {},
}

// Fields returns a copy of the kind's record contract, or nil for
// compound kinds whose internals are unchecked. For Hits the object
// form of the contract is returned.
func (k Kind) Fields() []Field {
	c, ok := contracts[k]
	if !ok || c.fields == nil {
		return nil
	}
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// PlanarCellFields returns the record contract of one cell inside a
// PlanarCaloCells record.
func PlanarCellFields() []Field {
	out := make([]Field, len(planarCellFields))
	copy(out, planarCellFields)
	return out
}
