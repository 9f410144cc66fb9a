package der_test

import (
	"encoding/asn1"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/keymesh/xpkix/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Version int
	ID      asn1.ObjectIdentifier
	Data    []byte
}

func makeSample(t *testing.T) ([]byte, []asn1.RawValue) {
	t.Helper()

	raw, err := asn1.Marshal(sample{
		Version: 7,
		ID:      asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1},
		Data:    []byte{0xDE, 0xAD},
	})
	require.NoError(t, err)

	elems, err := der.SplitSequence(raw)
	require.NoError(t, err)
	require.Len(t, elems, 3)

	return raw, elems
}

func TestSplitSequence(t *testing.T) {
	_, elems := makeSample(t)

	v, err := der.Integer(elems, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	id, err := der.ObjectID(elems, 1)
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.113549.1.1.1", id.String())

	data, err := der.OctetString(elems, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD}, data)
}

func TestSplitSequence_NotSequence(t *testing.T) {
	raw, err := asn1.Marshal(42)
	require.NoError(t, err)

	_, err = der.SplitSequence(raw)
	assert.True(t, errors.Is(err, der.ErrStructure))
}

func TestSplitSequence_TrailingData(t *testing.T) {
	raw, _ := makeSample(t)
	_, err := der.SplitSequence(append(raw, 0x00))
	assert.True(t, errors.Is(err, der.ErrStructure))
}

func TestBuildSequence_Roundtrip(t *testing.T) {
	raw, elems := makeSample(t)

	rebuilt, err := der.BuildSequence(elems[0].FullBytes, elems[1].FullBytes, elems[2].FullBytes)
	require.NoError(t, err)
	assert.Equal(t, raw, rebuilt)
}

func TestTypedAccessors_Mismatch(t *testing.T) {
	_, elems := makeSample(t)

	_, err := der.Integer(elems, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, der.ErrUnexpectedElementType))

	var typeErr *der.ElementTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, 1, typeErr.Index)
	assert.Equal(t, "INTEGER", typeErr.Expected)
	assert.Equal(t, "OBJECT IDENTIFIER", typeErr.Actual)

	_, err = der.Integer(elems, 5)
	assert.True(t, errors.Is(err, der.ErrStructure))

	_, err = der.Sequence(elems, 0)
	assert.True(t, errors.Is(err, der.ErrUnexpectedElementType))
}

func TestExplicitTag(t *testing.T) {
	inner, err := asn1.Marshal([]byte{1, 2, 3})
	require.NoError(t, err)

	wrapped, err := der.WrapExplicit(0, inner)
	require.NoError(t, err)
	assert.Equal(t, byte(0xA0), wrapped[0])

	el, err := der.ParseElement(wrapped)
	require.NoError(t, err)
	assert.True(t, der.IsContextTag(el, 0))

	nested, err := der.UnwrapExplicit(el)
	require.NoError(t, err)
	assert.Equal(t, inner, nested.FullBytes)
}

func TestUnwrapExplicit_NotContext(t *testing.T) {
	raw, _ := makeSample(t)
	el, err := der.ParseElement(raw)
	require.NoError(t, err)

	_, err = der.UnwrapExplicit(el)
	assert.True(t, errors.Is(err, der.ErrStructure))
}

func TestIA5String(t *testing.T) {
	raw, err := asn1.MarshalWithParams("hello", "ia5")
	require.NoError(t, err)
	seq, err := der.BuildSequence(raw)
	require.NoError(t, err)

	elems, err := der.SplitSequence(seq)
	require.NoError(t, err)

	s, err := der.IA5String(elems, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}
