// SPDX-License-Identifier: MIT
// Package: rwe/problem
//
// problem.go: the Problem container and its JSON form.

package problem

import (
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/matrix"
	"github.com/katalvlaran/rwe/sampler"
)

// Problem is a discrete OT instance: source weights A, target weights B and
// the len(A)×len(B) ground cost.
type Problem struct {
	A    []float64
	B    []float64
	Cost *matrix.Dense
}

// Ns returns the number of source atoms.
func (p *Problem) Ns() int { return len(p.A) }

// Nt returns the number of target atoms.
func (p *Problem) Nt() int { return len(p.B) }

// Validate checks that A and B are probability vectors within tol and that
// Cost is a finite len(A)×len(B) matrix.
// Complexity: O(ns·nt).
func (p *Problem) Validate(tol float64) error {
	if err := sampler.CheckPMF(p.A, tol); err != nil {
		return errors.Wrapf(ErrInvalidMeasure, "a: %v", err)
	}
	if err := sampler.CheckPMF(p.B, tol); err != nil {
		return errors.Wrapf(ErrInvalidMeasure, "b: %v", err)
	}
	if matrix.ValidateNotNil(p.Cost) != nil {
		return ErrNilCost
	}
	if err := matrix.ValidateShape(p.Cost, len(p.A), len(p.B)); err != nil {
		return errors.Wrapf(ErrDimensionMismatch, "cost %d×%d for %d×%d",
			p.Cost.Rows(), p.Cost.Cols(), len(p.A), len(p.B))
	}

	return matrix.ValidateFinite(p.Cost)
}

// document is the serialized form.
type document struct {
	A    []float64   `json:"a"`
	B    []float64   `json:"b"`
	Cost [][]float64 `json:"cost"`
}

// Save writes p as indented JSON.
func (p *Problem) Save(w io.Writer) error {
	if matrix.ValidateNotNil(p.Cost) != nil {
		return ErrNilCost
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(document{A: p.A, B: p.B, Cost: p.Cost.ToRows()}), "problem: encode")
}

// SaveFile writes p to path, replacing any existing file.
func (p *Problem) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "problem: create")
	}
	if err = p.Save(f); err != nil {
		_ = f.Close()
		return err
	}

	return errors.Wrap(f.Close(), "problem: close")
}

// Load reads a problem written by Save. The result is not validated beyond
// structural well-formedness; call Validate before solving.
func Load(r io.Reader) (*Problem, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}
	cost, err := matrix.NewDenseFrom(doc.Cost)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "cost: %v", err)
	}

	return &Problem{A: doc.A, B: doc.B, Cost: cost}, nil
}

// LoadFile reads a problem from path.
func LoadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "problem: open")
	}
	defer f.Close()

	return Load(f)
}
