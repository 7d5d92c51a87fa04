package vectortile

// Wire field numbers for the Tile/Layer/Feature/Value messages.
//
// The v2 fields below follow the published Mapbox Tile.proto layout
// exactly, so a v2-only tile produced by this encoder is byte-compatible
// with any conforming MVT 2.x reader. The v3 extensions (structured
// attributes, splines, 3D, tile coordinates, per-type tables) have no
// single published wire layout to match bit-for-bit - no public v3 spec
// exists yet in the form this spec describes - so the field numbers
// below are an internally self-consistent scheme: the correctness bar
// for v3 is that this package's own encoder and decoder agree with each
// other, not conformance to an external v3 fixture. See DESIGN.md.
const (
	tileFieldLayers = 3

	layerFieldName      = 1
	layerFieldFeatures  = 2
	layerFieldKeys      = 3
	layerFieldValues    = 4
	layerFieldExtent    = 5
	layerFieldVersion   = 15

	// v3 extensions.
	layerFieldTileCoord      = 16
	layerFieldDoubleValues   = 18
	layerFieldFloatValues    = 19
	layerFieldIntValues      = 20
	layerFieldUintValues     = 21
	layerFieldElevScaling    = 22
	layerFieldAttrScalings   = 23

	valueFieldString = 1
	valueFieldFloat  = 2
	valueFieldDouble = 3
	valueFieldInt    = 4
	valueFieldUint   = 5
	valueFieldSint   = 6
	valueFieldBool   = 7

	scalingFieldOffset     = 1
	scalingFieldMultiplier = 2
	scalingFieldBase       = 3

	tileCoordFieldZ = 1
	tileCoordFieldX = 2
	tileCoordFieldY = 3

	featureFieldID          = 1
	featureFieldTags        = 2
	featureFieldType        = 3
	featureFieldGeometry    = 4
	featureFieldHas3D       = 5
	featureFieldStringID    = 6
	featureFieldElevScaling = 7
	featureFieldGeomAttrs   = 8
	featureFieldAttributes  = 9
	featureFieldKnots       = 10
	featureFieldZGeometry   = 11

	knotsFieldScalingIndex = 1
	knotsFieldValues       = 2
)
