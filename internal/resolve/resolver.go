package resolve

import (
	"context"
	"errors"

	"github.com/goliatone/go-wpimport/internal/store"
)

// DefaultGroupName is the group users without an explicit group land in. It
// must already exist in the destination or user import aborts.
const DefaultGroupName = "Normal Users"

// ErrDefaultGroupMissing aborts user import when no group name is carried by
// the export and the fixed default group is absent.
var ErrDefaultGroupMissing = errors.New(`resolve: default group "` + DefaultGroupName + `" does not exist`)

// Regional holds the resolved destination IDs of a regional chain. Zero
// values mean the level could not be resolved; resolution stops silently at
// the first unresolved level.
type Regional struct {
	CountryID   int64
	RegionID    int64
	SubregionID int64
	CityID      int64
}

// Resolver reconciles source names against destination IDs, memoizing every
// lookup for the duration of one import run.
type Resolver struct {
	store *store.Store

	groups     map[string]int64
	countries  map[string]int64
	regions    map[string]*store.Region
	subregions map[string]*store.Subregion
	cities     map[string]*store.City
}

func New(st *store.Store) *Resolver {
	return &Resolver{
		store:      st,
		groups:     map[string]int64{},
		countries:  map[string]int64{},
		regions:    map[string]*store.Region{},
		subregions: map[string]*store.Subregion{},
		cities:     map[string]*store.City{},
	}
}

// Group resolves a group by name, creating it when missing.
func (r *Resolver) Group(ctx context.Context, name string) (int64, error) {
	if id, ok := r.groups[name]; ok {
		return id, nil
	}
	grp, err := r.store.GroupByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if grp == nil {
		grp = &store.Group{Name: name}
		if err := r.store.InsertGroup(ctx, grp); err != nil {
			return 0, err
		}
	}
	r.groups[name] = grp.ID
	return grp.ID, nil
}

// DefaultGroup resolves the fixed default group. Unlike Group it never
// creates the record; a missing default group is a fatal condition.
func (r *Resolver) DefaultGroup(ctx context.Context) (int64, error) {
	if id, ok := r.groups[DefaultGroupName]; ok {
		return id, nil
	}
	grp, err := r.store.GroupByName(ctx, DefaultGroupName)
	if err != nil {
		return 0, err
	}
	if grp == nil {
		return 0, ErrDefaultGroupMissing
	}
	r.groups[DefaultGroupName] = grp.ID
	return grp.ID, nil
}

// CountryID resolves a country by code, returning 0 when unknown.
func (r *Resolver) CountryID(ctx context.Context, code string) (int64, error) {
	if code == "" {
		return 0, nil
	}
	if id, ok := r.countries[code]; ok {
		return id, nil
	}
	ctry, err := r.store.CountryByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	var id int64
	if ctry != nil {
		id = ctry.ID
	}
	r.countries[code] = id
	return id, nil
}

// RegionalChain resolves country, region, subregion and city names. Each
// level requires the previous one resolved, and region/subregion/city are
// only accepted when their destination parent matches the resolved chain.
func (r *Resolver) RegionalChain(ctx context.Context, countryCode, region, subregion, city string) (Regional, error) {
	var out Regional

	countryID, err := r.CountryID(ctx, countryCode)
	if err != nil {
		return out, err
	}
	if countryID == 0 {
		return out, nil
	}
	out.CountryID = countryID

	if region == "" {
		return out, nil
	}
	rgn, err := r.regionByName(ctx, region)
	if err != nil {
		return out, err
	}
	if rgn == nil || rgn.CountryID != countryID {
		return out, nil
	}
	out.RegionID = rgn.ID

	if subregion != "" {
		subrg, err := r.subregionByName(ctx, subregion)
		if err != nil {
			return out, err
		}
		if subrg != nil && subrg.RegionID == out.RegionID {
			out.SubregionID = subrg.ID
		}
	}

	if city != "" {
		cty, err := r.cityByName(ctx, city)
		if err != nil {
			return out, err
		}
		if cty != nil && cty.RegionID == out.RegionID {
			out.CityID = cty.ID
		}
	}

	return out, nil
}

func (r *Resolver) regionByName(ctx context.Context, name string) (*store.Region, error) {
	if rgn, ok := r.regions[name]; ok {
		return rgn, nil
	}
	rgn, err := r.store.RegionByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.regions[name] = rgn
	return rgn, nil
}

func (r *Resolver) subregionByName(ctx context.Context, name string) (*store.Subregion, error) {
	if subrg, ok := r.subregions[name]; ok {
		return subrg, nil
	}
	subrg, err := r.store.SubregionByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.subregions[name] = subrg
	return subrg, nil
}

func (r *Resolver) cityByName(ctx context.Context, name string) (*store.City, error) {
	if cty, ok := r.cities[name]; ok {
		return cty, nil
	}
	cty, err := r.store.CityByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.cities[name] = cty
	return cty, nil
}
