// Package domain models asteroid impact scenarios and the geographic context
// they land in.
//
// # Units
//
// All physical quantities are SI unless the field name says otherwise:
//
//	diameter, crater diameter, elevation      metres
//	velocity, delta-v                         metres per second
//	mass                                      kilograms
//	energy                                    joules
//	radii and distances ending in Km          kilometres
//	angles                                    degrees
//
// Elevation is signed: negative values are below sea level, and for oceanic
// points the magnitude is the water depth.
//
// # Geographic Context
//
// A [GeographicContext] is assembled per request by a [ContextResolver] from
// an elevation provider chain and a seismic history provider. Lookups never
// fail the request. When every elevation provider is unavailable the chain
// falls back to [HeuristicElevation], and a failed seismic lookup yields an
// empty [SeismicHistory] tagged "unavailable".
//
// Terrain is derived from elevation thresholds (see [ClassifyTerrain]):
//
//	oceanic:  depth >2000 m deep_ocean | >500 m mid_ocean | else shallow_ocean
//	land:     ≥2000 m mountain_high | |lat| 15–35° in an arid region desert |
//	          ≥300 m forest | <50 m urban | else continental
//
// A desert above 1000 m is treated as a plateau, otherwise as a sediment basin.
//
// # Ocean Basins
//
// [OceanBasinAt] tests the point against an embedded land mask of simplified
// coastline outlines (landmask.yaml): any point outside every outline is
// ocean. Enclosed seas such as the Gulf of Mexico, the Mediterranean and the
// Bay of Bengal are water, while small islands and narrow inland seas are not
// modelled. Basins are named by normalised longitude, and the Pacific test is
// a union of two ranges so it holds across the ±180° meridian.
//
// # Coastal Distance
//
// [EstimateCoastalDistanceKm] is the distance to the nearest edge of the same
// land mask, or zero for oceanic points. Along open coasts it is within about
// 50 km of the true value. It is deterministic so repeated simulations of the
// same point agree.
package domain
