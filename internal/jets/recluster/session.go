package recluster

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"go-hep.org/x/hep/fmom"
)

// maxRap bounds the rapidity of objects with no transverse momentum.
const maxRap = 1e5

// pseudo is one work item of the clustering.
type pseudo struct {
	p4      fmom.PxPyPzE
	pt2     float64
	pt      float64
	rap     float64
	phi     float64
	members []int
}

func newPseudo(p4 fmom.PxPyPzE, members []int) pseudo {
	px, py := p4.Px(), p4.Py()
	pt2 := px*px + py*py
	ps := pseudo{p4: p4, pt2: pt2, pt: math.Sqrt(pt2), members: members}
	ps.phi = math.Atan2(py, px)
	ps.rap = rapidity(p4.E(), p4.Pz(), pt2)
	return ps
}

func rapidity(e, pz, pt2 float64) float64 {
	if e == math.Abs(pz) && pt2 == 0 {
		return math.Copysign(maxRap+math.Abs(pz), pz)
	}
	m2 := math.Max(e*e-pz*pz-pt2, 0)
	e = math.Abs(e)
	num := e + math.Abs(pz)
	rap := 0.5 * math.Log((pt2+m2)/(num*num))
	if rap < -maxRap {
		rap = -maxRap
	}
	if pz > 0 {
		rap = -rap
	}
	return rap
}

// fromPtRapPhiM builds the four-momentum with the given transverse
// momentum, rapidity, azimuth and mass.
func fromPtRapPhiM(pt, rap, phi, m float64) fmom.PxPyPzE {
	mt := math.Sqrt(pt*pt + m*m)
	return fmom.NewPxPyPzE(pt*math.Cos(phi), pt*math.Sin(phi), mt*math.Sinh(rap), mt*math.Cosh(rap))
}

func mass(p4 *fmom.PxPyPzE) float64 {
	m2 := p4.E()*p4.E() - p4.Px()*p4.Px() - p4.Py()*p4.Py() - p4.Pz()*p4.Pz()
	if m2 < 0 {
		return 0
	}
	return math.Sqrt(m2)
}

var workPool = sync.Pool{
	New: func() interface{} {
		buf := make([]pseudo, 0, 64)
		return &buf
	},
}

// Jet is one clustered object.
type Jet struct {
	P4 fmom.PxPyPzE

	Pt, Eta, Phi, Rapidity, M float64

	// Constituents are indices into the session input.
	Constituents []int
}

func jetOf(ps *pseudo) Jet {
	j := Jet{
		P4:           ps.p4,
		Pt:           ps.pt,
		Phi:          ps.phi,
		Rapidity:     ps.rap,
		M:            mass(&ps.p4),
		Constituents: append([]int(nil), ps.members...),
	}
	j.Eta = pseudorapidity(&ps.p4, ps.pt)
	return j
}

func pseudorapidity(p4 *fmom.PxPyPzE, pt float64) float64 {
	pz := p4.Pz()
	if pt == 0 {
		return math.Copysign(maxRap+math.Abs(pz), pz)
	}
	return math.Asinh(pz / pt)
}

// Session holds one clustering of a particle set. It must be closed after
// use; Close returns the work buffers and invalidates the session.
type Session struct {
	def    Definition
	buf    *[]pseudo
	work   []pseudo
	final  []Jet
	closed bool
}

// NewSession clusters particles with def. The clustering runs eagerly;
// results are read back with InclusiveJets.
func NewSession(particles []fmom.PxPyPzE, def Definition) (*Session, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	buf := workPool.Get().(*[]pseudo)
	work := (*buf)[:0]
	for i := range particles {
		work = append(work, newPseudo(particles[i], []int{i}))
	}
	s := &Session{def: def, buf: buf, work: work}
	s.run()
	return s, nil
}

// run performs the pairwise merge loop. Inputs here are the constituents
// of one jet, so the quadratic scan per step is adequate.
func (s *Session) run() {
	p := s.def.Algorithm.exponent()
	invR2 := 1 / (s.def.R * s.def.R)

	active := s.work
	for len(active) > 0 {
		// Seeded with the first beam distance: with p < 0 a zero-pt entry
		// has an infinite one and must still leave the loop.
		bi, bj := 0, -1
		best := beamDistance(&active[0], p)
		for i := range active {
			diB := beamDistance(&active[i], p)
			if diB < best {
				best, bi, bj = diB, i, -1
			}
			for j := i + 1; j < len(active); j++ {
				dij := pairDistance(&active[i], &active[j], p, invR2)
				if dij < best {
					best, bi, bj = dij, i, j
				}
			}
		}

		if bj < 0 {
			s.final = append(s.final, jetOf(&active[bi]))
			last := len(active) - 1
			active[bi] = active[last]
			active = active[:last]
			continue
		}

		merged := s.merge(&active[bi], &active[bj])
		active[bi] = merged
		last := len(active) - 1
		active[bj] = active[last]
		active = active[:last]
	}
}

func beamDistance(a *pseudo, p float64) float64 {
	return momentumFactor(a.pt2, p)
}

func pairDistance(a, b *pseudo, p, invR2 float64) float64 {
	drap := a.rap - b.rap
	dphi := math.Remainder(a.phi-b.phi, 2*math.Pi)
	dr2 := drap*drap + dphi*dphi
	return math.Min(momentumFactor(a.pt2, p), momentumFactor(b.pt2, p)) * dr2 * invR2
}

func momentumFactor(pt2, p float64) float64 {
	switch p {
	case 0:
		return 1
	case 1:
		return pt2
	}
	if pt2 == 0 {
		return math.Inf(1)
	}
	return math.Pow(pt2, p)
}

func (s *Session) merge(a, b *pseudo) pseudo {
	members := make([]int, 0, len(a.members)+len(b.members))
	members = append(members, a.members...)
	members = append(members, b.members...)

	switch s.def.Scheme {
	case WTAPtScheme:
		hard := a
		if b.pt2 > a.pt2 {
			hard = b
		}
		p4 := fromPtRapPhiM(a.pt+b.pt, hard.rap, hard.phi, mass(&hard.p4))
		return newPseudo(p4, members)
	default:
		p4 := fmom.NewPxPyPzE(
			a.p4.Px()+b.p4.Px(),
			a.p4.Py()+b.p4.Py(),
			a.p4.Pz()+b.p4.Pz(),
			a.p4.E()+b.p4.E(),
		)
		return newPseudo(p4, members)
	}
}

// InclusiveJets returns every final jet with pt >= ptMin, hardest first.
func (s *Session) InclusiveJets(ptMin float64) ([]Jet, error) {
	if s.closed {
		return nil, fmt.Errorf("recluster: session used after Close")
	}
	out := make([]Jet, 0, len(s.final))
	for _, j := range s.final {
		if j.Pt >= ptMin {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Pt > out[k].Pt })
	return out, nil
}

// Definition returns the definition the session was built with.
func (s *Session) Definition() Definition {
	return s.def
}

// Close releases the session. Calling Close twice is harmless.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if cap(s.work) <= 4096 {
		*s.buf = s.work[:0]
		workPool.Put(s.buf)
	}
	s.buf = nil
	s.work = nil
	s.final = nil
}
