// Package inmemdb provides map-backed repositories for tests and local
// hacking where no Postgres instance is around.
package inmemdb

import (
	"sync"

	"github.com/unihive/unihive/core/booking"
	"github.com/unihive/unihive/core/catalog"
	"github.com/unihive/unihive/core/post"
	"github.com/unihive/unihive/core/review"
	"github.com/unihive/unihive/core/user"
)

type (
	DB struct {
		user    *userTable
		review  *reviewTable
		post    *postTable
		booking *bookingTable
		catalog *catalogTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	reviewTable struct {
		table map[string]*review.Review
		mutex sync.RWMutex
	}

	postTable struct {
		table map[string]*post.Post
		likes map[string]map[string]bool // postID -> set of userIDs
		mutex sync.RWMutex
	}

	bookingTable struct {
		venues   map[string]*booking.Venue
		bookings map[string]*booking.Booking
		mutex    sync.RWMutex
	}

	catalogTable struct {
		courses   map[string]*catalog.Course
		companies map[string]*catalog.Company
		mutex     sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:   &userTable{table: make(map[string]*user.User)},
		review: &reviewTable{table: make(map[string]*review.Review)},
		post: &postTable{
			table: make(map[string]*post.Post),
			likes: make(map[string]map[string]bool),
		},
		booking: &bookingTable{
			venues:   make(map[string]*booking.Venue),
			bookings: make(map[string]*booking.Booking),
		},
		catalog: &catalogTable{
			courses:   make(map[string]*catalog.Course),
			companies: make(map[string]*catalog.Company),
		},
	}
	return db, nil
}
