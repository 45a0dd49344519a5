package view

import (
	"github.com/yaklabco/gridmark/pkg/doc"
	"github.com/yaklabco/gridmark/pkg/table"
)

// FieldName is the state-field name the registry is carried under.
const FieldName = "gridmark.tableviews"

// StateField builds the field spec that keeps a Registry synchronized with
// the document. On every transaction the stored spans are remapped through
// the change set, the snapshot is reconciled against the tables in the new
// parse tree, and the transaction is mirrored into the nested session if one
// is open, all synchronously within the transaction.
func StateField(opts ...Option) doc.FieldSpec {
	return doc.FieldSpec{
		Name: FieldName,
		Init: func(st *doc.State) any {
			reg := NewRegistry(opts...)
			return reg.Reconcile(st, table.Locate(st.Tree(), st.Bytes()))
		},
		Update: func(value any, tx *doc.Transaction) any {
			reg, ok := value.(*Registry)
			if !ok {
				reg = NewRegistry(opts...)
			}
			reg = reg.Remap(tx.Changes())
			st := tx.State()
			reg = reg.Reconcile(st, table.Locate(st.Tree(), st.Bytes()))
			reg.Slot().Forward(tx)
			return reg
		},
		Compare: func(a, b any) bool {
			ra, aok := a.(*Registry)
			rb, bok := b.(*Registry)
			return aok && bok && ra.Eq(rb)
		},
	}
}

// RegistryOf extracts the registry from a state carrying the field.
func RegistryOf(st *doc.State) (*Registry, bool) {
	v, ok := st.Field(FieldName)
	if !ok {
		return nil, false
	}
	reg, ok := v.(*Registry)
	return reg, ok
}
