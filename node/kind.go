package node

// mode selects what a walk produces.
type mode int

const (
	modeMap    mode = iota // plain maps for every container
	modeRecord             // records at the root, and below it with FlagNestedRecords
	modeFold               // keys folded, container kinds preserved
)

// opaqueAction is what happens to a value classified as opaque.
type opaqueAction int

const (
	opaquePassthrough  opaqueAction = iota // return the original value untouched
	opaqueExpandMap                        // reflect its fields into a map
	opaqueExpandRecord                     // reflect its fields into a record
)

type opaqueKey struct {
	root   bool
	expand bool
	nested bool
}

// The root value is always expanded. Below it, ToMap expands when asked to,
// and ToRecord expands into a record only when nested records were asked for
// as well, into a plain map otherwise.
var (
	mapOpaqueTable = map[opaqueKey]opaqueAction{
		{root: true, expand: false, nested: false}:  opaqueExpandMap,
		{root: true, expand: false, nested: true}:   opaqueExpandMap,
		{root: true, expand: true, nested: false}:   opaqueExpandMap,
		{root: true, expand: true, nested: true}:    opaqueExpandMap,
		{root: false, expand: true, nested: false}:  opaqueExpandMap,
		{root: false, expand: true, nested: true}:   opaqueExpandMap,
		{root: false, expand: false, nested: false}: opaquePassthrough,
		{root: false, expand: false, nested: true}:  opaquePassthrough,
	}

	recordOpaqueTable = map[opaqueKey]opaqueAction{
		{root: true, expand: false, nested: false}:  opaqueExpandRecord,
		{root: true, expand: false, nested: true}:   opaqueExpandRecord,
		{root: true, expand: true, nested: false}:   opaqueExpandRecord,
		{root: true, expand: true, nested: true}:    opaqueExpandRecord,
		{root: false, expand: true, nested: false}:  opaqueExpandMap,
		{root: false, expand: true, nested: true}:   opaqueExpandRecord,
		{root: false, expand: false, nested: false}: opaquePassthrough,
		{root: false, expand: false, nested: true}:  opaquePassthrough,
	}
)

func decideOpaque(m mode, key opaqueKey) opaqueAction {
	switch m {
	case modeMap:
		return mapOpaqueTable[key]
	case modeRecord:
		return recordOpaqueTable[key]
	default:
		return opaquePassthrough
	}
}
