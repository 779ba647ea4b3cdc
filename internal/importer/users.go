package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-wpimport/internal/resolve"
	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/internal/wxr"
)

const mysqlTimeLayout = "2006-01-02 15:04:05"

// importAuthors creates destination accounts for the export's authors. A
// login that already exists is mapped onto the existing account instead of
// creating a duplicate.
func (r *run) importAuthors(ctx context.Context) error {
	if len(r.doc.Authors) == 0 {
		return nil
	}
	r.report().Log("Importing users...")

	existing, err := r.st.UserLogins(ctx)
	if err != nil {
		return err
	}

	for i := range r.doc.Authors {
		author := &r.doc.Authors[i]
		login := resolve.SanitizeLogin(author.Login)
		if login == "" {
			r.report().Warning("Skipping author #%d without a usable login", author.ID)
			r.stats.UsersSkipped++
			continue
		}

		if id, ok := existing[login]; ok {
			r.authors[login] = id
			r.authorIDs[author.ID] = id
			r.stats.UsersSkipped++
			continue
		}

		user, err := r.buildUser(ctx, author, login)
		if err != nil {
			return err
		}
		if err := r.st.InsertUser(ctx, user); err != nil {
			r.report().Error("Could not create user %s: %v", login, err)
			r.stats.UsersFailed++
			continue
		}
		existing[login] = user.ID
		r.authors[login] = user.ID
		r.authorIDs[author.ID] = user.ID
		r.stats.UsersCreated++

		if ip := ipv4ToInt(author.CreatedFromIPv4); ip != 0 {
			if err := r.st.SetUserSetting(ctx, user.ID, "created_fromIPv4", fmt.Sprintf("%d", ip)); err != nil {
				return err
			}
		}

		// Attachment links and the avatar reference wait until the file
		// records exist.
		if author.AvatarFileID != 0 {
			r.avatarFiles[user.ID] = author.AvatarFileID
		}
		for _, link := range author.Links {
			if link.UserID == 0 || link.FileID == 0 {
				continue
			}
			if r.userLinks[user.ID] == nil {
				r.userLinks[user.ID] = map[int64]wxr.Link{}
			}
			r.userLinks[user.ID][link.FileID] = link
		}
	}

	r.report().Success("%d users created, %d mapped onto existing accounts, %d failed", r.stats.UsersCreated, r.stats.UsersSkipped, r.stats.UsersFailed)
	return nil
}

func (r *run) buildUser(ctx context.Context, author *wxr.Author, login string) (*store.User, error) {
	var groupID int64
	var err error
	if author.Group != "" {
		groupID, err = r.res.Group(ctx, author.Group)
	} else {
		groupID, err = r.res.DefaultGroup(ctx)
	}
	if err != nil {
		return nil, err
	}

	status := author.Status
	if status == "" {
		status = "autoactivated"
	}

	var gender string
	switch author.Gender {
	case "female":
		gender = "F"
	case "male":
		gender = "M"
	}

	regCountryID, err := r.res.CountryID(ctx, author.CreatedFromCountry)
	if err != nil {
		return nil, err
	}
	regional, err := r.res.RegionalChain(ctx, author.Country, author.Region, author.Subregion, author.City)
	if err != nil {
		return nil, err
	}

	passDriver := author.PassDriver
	if passDriver == "" {
		passDriver = "evo$md5"
	}

	user := &store.User{
		Login:        login,
		Email:        author.Email,
		FirstName:    r.convert(author.FirstName),
		LastName:     r.convert(author.LastName),
		Nickname:     r.convert(author.Nickname),
		Pass:         author.Pass,
		Salt:         author.Salt,
		PassDriver:   passDriver,
		GroupID:      groupID,
		Status:       status,
		URL:          author.URL,
		Level:        author.Level,
		Locale:       author.Locale,
		Gender:       gender,
		AgeMin:       author.AgeMin,
		AgeMax:       author.AgeMax,
		RegCountryID: regCountryID,
		CountryID:    regional.CountryID,
		RegionID:     regional.RegionID,
		SubregionID:  regional.SubregionID,
		CityID:       regional.CityID,
		Source:       author.Source,
	}
	if user.Nickname == "" {
		user.Nickname = r.convert(author.DisplayName)
	}

	if ts, err := time.Parse(mysqlTimeLayout, author.CreatedTS); err == nil {
		user.CreatedAt = ts
	}
	if ts, err := time.Parse(mysqlTimeLayout, author.LastSeenTS); err == nil {
		user.LastSeenAt = &ts
	}
	if ts, err := time.Parse(mysqlTimeLayout, author.ProfileUpdateDate); err == nil {
		user.ProfileUpdatedAt = ts
	}
	return user, nil
}
