package http

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/orbit"
	"github.com/couchcryptid/asteroid-impact-service/internal/simulation"
)

// earthPosition is the frame origin reported with every trajectory.
var earthPosition = domain.OrbitalPoint{}

type impactResponse struct {
	Success bool `json:"success"`
	simulation.ImpactReport
}

func (s *Server) handleSimulateImpact(w http.ResponseWriter, r *http.Request) {
	req := newImpactRequest()
	if err := s.bind(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	coord, err := req.coordinates()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	spec, err := req.impactor()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.deps.Simulator.SimulateImpact(r.Context(), spec, coord)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impactResponse{Success: true, ImpactReport: report})
}

type deflectionResponse struct {
	Success        bool                            `json:"success"`
	ID             string                          `json:"simulation_id"`
	SimulatedAt    time.Time                       `json:"simulated_at"`
	Result         domain.DeflectionResult         `json:"result"`
	Recommendation domain.DeflectionRecommendation `json:"recommendation"`
}

func (s *Server) handleSimulateDeflection(w http.ResponseWriter, r *http.Request) {
	req := newDeflectionRequest()
	if err := s.bind(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	params, err := req.params()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.deps.Simulator.SimulateDeflection(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deflectionResponse{
		Success:        true,
		ID:             report.ID,
		SimulatedAt:    report.SimulatedAt,
		Result:         report.Result,
		Recommendation: report.Recommendation,
	})
}

type trajectoryResponse struct {
	Success       bool                    `json:"success"`
	Designation   string                  `json:"designation,omitempty"`
	Elements      *domain.OrbitalElements `json:"orbital_elements,omitempty"`
	Trajectory    []domain.OrbitalPoint   `json:"trajectory"`
	EarthPosition domain.OrbitalPoint     `json:"earth_position"`
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	req := newTrajectoryRequest()
	if err := s.bind(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	seq, err := s.deps.Simulator.Trajectory(req.SemiMajorAxis, req.Eccentricity, req.NumPoints)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trajectoryResponse{
		Success:       true,
		Trajectory:    slices.Collect(seq),
		EarthPosition: earthPosition,
	})
}

type neoResponse struct {
	Success   bool                `json:"success"`
	Error     string              `json:"error,omitempty"`
	Count     int                 `json:"count"`
	Asteroids []domain.NEOSummary `json:"asteroids"`
}

// handleRecentNEOs always answers 200. A feed failure is reported in the body
// alongside the static sample list.
func (s *Server) handleRecentNEOs(w http.ResponseWriter, r *http.Request) {
	neos, err := s.deps.NEOs.RecentNEOs(r.Context())
	if err != nil {
		s.logger.Warn("neo feed failed, serving sample data", "error", err)
		var sample []domain.NEOSummary
		if s.deps.SampleNEOs != nil {
			sample = s.deps.SampleNEOs()
		}
		writeJSON(w, http.StatusOK, neoResponse{
			Success:   false,
			Error:     err.Error(),
			Count:     len(sample),
			Asteroids: sample,
		})
		return
	}
	writeJSON(w, http.StatusOK, neoResponse{Success: true, Count: len(neos), Asteroids: neos})
}

type smallBodyResponse struct {
	Success  bool                   `json:"success"`
	Asteroid domain.SmallBodyRecord `json:"asteroid"`
}

func (s *Server) handleSmallBody(w http.ResponseWriter, r *http.Request) {
	record, err := s.deps.SmallBodies.Lookup(r.Context(), strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, smallBodyResponse{Success: true, Asteroid: record})
}

func (s *Server) handleSmallBodyTrajectory(w http.ResponseWriter, r *http.Request) {
	numPoints := orbit.DefaultPoints
	if raw := r.URL.Query().Get("num_points"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: num_points must be an integer, got %q", domain.ErrInvalidInput, raw))
			return
		}
		numPoints = n
	}

	record, err := s.deps.SmallBodies.Lookup(r.Context(), strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	seq, err := s.deps.Simulator.OrientedTrajectory(record.Elements, numPoints)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trajectoryResponse{
		Success:       true,
		Designation:   record.Designation,
		Elements:      &record.Elements,
		Trajectory:    slices.Collect(seq),
		EarthPosition: earthPosition,
	})
}

type citiesResponse struct {
	Success    bool           `json:"success"`
	Cities     []domain.Place `json:"cities"`
	TotalFound int            `json:"total_found"`
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	req := newCitiesRequest()
	if err := s.bind(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	coord, err := req.coordinates()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	places, err := s.deps.Area.Places(r.Context(), coord, req.Radius)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, citiesResponse{Success: true, Cities: places, TotalFound: len(places)})
}

type populationResponse struct {
	Success bool `json:"success"`
	domain.PopulationEstimate
}

func (s *Server) handlePopulation(w http.ResponseWriter, r *http.Request) {
	req := newPopulationRequest()
	if err := s.bind(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	coord, err := req.coordinates()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	est, err := s.deps.Area.EstimatePopulation(r.Context(), simulation.PopulationRequest{
		Centre:        coord,
		RadiusM:       req.Radius,
		DestructionKm: req.DestructionRadiusKm,
		DamageKm:      req.DamageRadiusKm,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, populationResponse{Success: true, PopulationEstimate: est})
}

type floraFaunaResponse struct {
	Success        bool               `json:"success"`
	ImpactLocation domain.Coordinates `json:"impact_location"`
	ImpactRadiusKm float64            `json:"impact_radius_km"`
	simulation.BiologyReport
}

func (s *Server) handleFloraFauna(w http.ResponseWriter, r *http.Request) {
	req := newFloraFaunaRequest()
	if err := s.bind(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	coord, err := req.coordinates()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.deps.Area.AssessBiology(r.Context(), simulation.BiologyRequest{
		Centre:        coord,
		RadiusKm:      req.ImpactRadiusKm,
		Megatons:      req.ImpactEnergyMegatons,
		DestructionKm: req.destructionKm(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, floraFaunaResponse{
		Success:        true,
		ImpactLocation: coord,
		ImpactRadiusKm: req.ImpactRadiusKm,
		BiologyReport:  report,
	})
}

type geoContextResponse struct {
	Success  bool                     `json:"success"`
	Location domain.GeographicContext `json:"location"`
}

func (s *Server) handleGeoContext(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := parseQueryFloat(q.Get("latitude"), "latitude")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lon, err := parseQueryFloat(q.Get("longitude"), "longitude")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	coord, err := domain.NewCoordinates(lat, lon)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, geoContextResponse{Success: true, Location: s.deps.Geo.Resolve(r.Context(), coord)})
}

// bind decodes the body over the defaults already in dst and validates it.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	return validateRequest(dst)
}

func parseQueryFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidInput, name, raw)
	}
	return v, nil
}
