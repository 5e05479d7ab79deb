package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"slices"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/orbit"
	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var compact bool

	root := &cobra.Command{
		Use:           "impactctl",
		Short:         "Asteroid impact calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&compact, "compact", false, "print JSON on a single line")

	out := func(cmd *cobra.Command, v any) error {
		return writeJSON(cmd.OutOrStdout(), v, !compact)
	}
	root.AddCommand(newSimulateCmd(out), newDeflectCmd(out), newOrbitCmd(out))
	return root
}

type printer func(cmd *cobra.Command, v any) error

func newSimulateCmd(out printer) *cobra.Command {
	var (
		diameter, velocity, angle float64
		lat, lon                  float64
		composition               string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate an impact at a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			comp, err := domain.ParseComposition(composition)
			if err != nil {
				return err
			}
			spec, err := domain.NewImpactorSpec(diameter, velocity, angle, comp)
			if err != nil {
				return err
			}
			coord, err := domain.NewCoordinates(lat, lon)
			if err != nil {
				return err
			}

			geo := offlineResolver().Resolve(cmd.Context(), coord)
			result, err := physics.Simulate(spec, geo)
			if err != nil {
				return err
			}
			return out(cmd, struct {
				Impactor domain.ImpactorSpec      `json:"impactor"`
				Location domain.GeographicContext `json:"location"`
				Result   domain.ImpactResult      `json:"results"`
			}{spec, geo, result})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&diameter, "diameter", 100, "impactor diameter in metres")
	f.Float64Var(&velocity, "velocity", 20000, "impact velocity in m/s")
	f.Float64Var(&angle, "angle", 45, "entry angle in degrees from horizontal")
	f.StringVar(&composition, "composition", string(domain.CompositionRocky), "rocky, metallic, carbonaceous or icy")
	f.Float64Var(&lat, "lat", 0, "impact latitude")
	f.Float64Var(&lon, "lon", 0, "impact longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func newDeflectCmd(out printer) *cobra.Command {
	var (
		params                physics.DeflectionParams
		composition, strategy string
	)

	cmd := &cobra.Command{
		Use:   "deflect",
		Short: "Estimate a deflection mission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if params.Composition, err = domain.ParseComposition(composition); err != nil {
				return err
			}
			if params.Strategy, err = domain.ParseDeflectionStrategy(strategy); err != nil {
				return err
			}
			result, err := physics.Deflect(params)
			if err != nil {
				return err
			}
			return out(cmd, struct {
				Result         domain.DeflectionResult         `json:"result"`
				Recommendation domain.DeflectionRecommendation `json:"recommendation"`
			}{result, physics.Recommend(result)})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&params.AsteroidDiameter, "diameter", 100, "asteroid diameter in metres")
	f.Float64Var(&params.AsteroidVelocity, "velocity", 20000, "asteroid velocity in m/s")
	f.StringVar(&composition, "composition", string(domain.CompositionRocky), "rocky, metallic, carbonaceous or icy")
	f.StringVar(&strategy, "strategy", string(domain.StrategyKineticImpactor), "kinetic_impactor or gravity_tractor")
	f.Float64Var(&params.TimeBeforeImpactDays, "days", 365, "lead time before impact in days")
	f.Float64Var(&params.ImpactorMass, "impactor-mass", 1000, "impactor spacecraft mass in kg")
	f.Float64Var(&params.ImpactorVelocity, "impactor-velocity", 10000, "impactor velocity in m/s")
	return cmd
}

func newOrbitCmd(out printer) *cobra.Command {
	var (
		el     domain.OrbitalElements
		points int
	)

	cmd := &cobra.Command{
		Use:   "orbit",
		Short: "Sample positions along an orbit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := orbit.Validate(el.SemiMajorAxis, el.Eccentricity, points); err != nil {
				return err
			}
			return out(cmd, struct {
				Elements   domain.OrbitalElements `json:"orbital_elements"`
				Trajectory []domain.OrbitalPoint  `json:"trajectory"`
			}{el, slices.Collect(orbit.OrientedTrajectory(el, points))})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&el.SemiMajorAxis, "semi-major-axis", 1.5e11, "semi-major axis in metres")
	f.Float64Var(&el.Eccentricity, "eccentricity", 0.1, "eccentricity in [0, 1)")
	f.Float64Var(&el.Inclination, "inclination", 0, "inclination in degrees")
	f.Float64Var(&el.AscendingNode, "ascending-node", 0, "longitude of the ascending node in degrees")
	f.Float64Var(&el.ArgPerihelion, "arg-perihelion", 0, "argument of perihelion in degrees")
	f.IntVar(&points, "points", orbit.DefaultPoints, "number of points to sample")
	return cmd
}

// offlineResolver builds a context resolver with no providers, so every site
// gets heuristic elevation and no seismic history.
func offlineResolver() *domain.ContextResolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return domain.NewContextResolver(domain.NewElevationChain(logger, nil), nil, logger)
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
