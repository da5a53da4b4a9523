package model

import (
	"encoding/binary"
	"fmt"
	"regexp"

	"golang.org/x/crypto/sha3"
)

// namespaceIDFlag is set on the high word of every namespace id, keeping the
// namespace and token id spaces disjoint.
const namespaceIDFlag = 0x80000000

var namespaceNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// NamespaceID is the canonical 64-bit identifier of a namespace. Two ids are
// equal iff their canonical forms match, regardless of whether they were
// decoded from the wire or derived from a name.
type NamespaceID Unsigned64

// NamespaceIDFromHex decodes a namespace id from its 16-character hex wire
// form.
func NamespaceIDFromHex(s string) (NamespaceID, error) {
	v, err := Unsigned64FromHex(s)
	if err != nil {
		return NamespaceID{}, err
	}
	return NamespaceID(v), nil
}

// NamespaceIDFromName deterministically derives the id registered for a
// human-readable name. Pass nil for a root namespace; sub-namespace ids are
// scoped by their parent, so "tokens" under two different roots yields two
// different ids.
func NamespaceIDFromName(name string, parent *NamespaceID) (NamespaceID, error) {
	if !namespaceNameRe.MatchString(name) {
		return NamespaceID{}, fmt.Errorf("%w: invalid namespace name %q", ErrMalformedValue, name)
	}

	var seed [8]byte
	if parent != nil {
		binary.LittleEndian.PutUint32(seed[0:4], parent.id().Lower)
		binary.LittleEndian.PutUint32(seed[4:8], parent.id().Higher)
	}

	h := sha3.Sum256(append(seed[:], name...))
	return NamespaceID(Unsigned64{
		Lower:  binary.LittleEndian.Uint32(h[0:4]),
		Higher: binary.LittleEndian.Uint32(h[4:8]) | namespaceIDFlag,
	}), nil
}

func (id NamespaceID) id() Unsigned64 { return Unsigned64(id) }

// Hex returns the 16-character wire form.
func (id NamespaceID) Hex() string { return Unsigned64(id).Hex() }

func (id NamespaceID) String() string { return id.Hex() }

// Equal reports canonical-form equality.
func (id NamespaceID) Equal(o NamespaceID) bool { return id == o }

// NamespaceRegistrationType distinguishes root registrations from
// sub-namespace registrations.
type NamespaceRegistrationType uint8

const (
	NamespaceRegistrationRoot NamespaceRegistrationType = 0
	NamespaceRegistrationSub  NamespaceRegistrationType = 1
)

// NamespaceInfo is the decoded state of one registered namespace.
type NamespaceInfo struct {
	ID           NamespaceID
	Registration NamespaceRegistrationType
	Depth        int
	ParentID     NamespaceID // zero for root namespaces
	Owner        Address
	StartHeight  Unsigned64
	EndHeight    Unsigned64
	Alias        Alias
}

// NamespaceName pairs a namespace id with its registered name.
type NamespaceName struct {
	ID   NamespaceID
	Name string
}
