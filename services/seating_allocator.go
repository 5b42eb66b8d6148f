package services

import (
	"fmt"
	"math/rand"

	"github.com/MLR-commits/Intranet_BAcademic/funct"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pure allocation core. Takes demand (students) and resources (rooms),
// returns seat allocations plus the unallocated remainder, so it can be
// tested without Mongo or the web layer.

type AllocStudent struct {
	ID         primitive.ObjectID
	Department string
}

type AllocRoom struct {
	RoomNumber string
	Capacity   int
	Floor      string
	Building   string
}

type Allocation struct {
	Student    primitive.ObjectID
	RoomNumber string
	SeatNumber string
	Floor      string
	Building   string
	Department string
}

type AllocSummary struct {
	TotalAllocated int
	RoomsUsed      int
	Departments    int
	BenchesUsed    int
}

// deptPool groups students by department with a consumption pointer per
// group, so departments can be interleaved within a room
type deptPool struct {
	departments []string
	groups      map[string][]AllocStudent
	pointers    map[string]int
}

func newDeptPool(students []AllocStudent, rng *rand.Rand) *deptPool {
	pool := &deptPool{
		groups:   make(map[string][]AllocStudent),
		pointers: make(map[string]int),
	}
	for _, student := range students {
		dept := student.Department
		if dept == "" {
			dept = "Unknown"
		}
		if _, ok := pool.groups[dept]; !ok {
			pool.departments = append(pool.departments, dept)
		}
		pool.groups[dept] = append(pool.groups[dept], student)
	}
	// Shuffle inside each department so friends with consecutive roll
	// numbers never end up side by side
	for _, dept := range pool.departments {
		group := pool.groups[dept]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
	}
	return pool
}

func (pool *deptPool) available() []string {
	var depts []string
	for _, dept := range pool.departments {
		if pool.pointers[dept] < len(pool.groups[dept]) {
			depts = append(depts, dept)
		}
	}
	return depts
}

// pick selects a department, preferring one not yet seated in the room
// until the room holds at least two departments
func (pool *deptPool) pick(roomDepts map[string]bool, rng *rand.Rand) (string, bool) {
	available := pool.available()
	if len(available) == 0 {
		return "", false
	}
	if len(roomDepts) < 2 {
		unused := funct.Filter(available, func(dept string) bool {
			return !roomDepts[dept]
		})
		if len(unused) > 0 {
			return unused[rng.Intn(len(unused))], true
		}
	}
	return available[rng.Intn(len(available))], true
}

func (pool *deptPool) take(dept string) AllocStudent {
	student := pool.groups[dept][pool.pointers[dept]]
	pool.pointers[dept]++
	return student
}

func (pool *deptPool) remainder() []AllocStudent {
	var students []AllocStudent
	for _, dept := range pool.departments {
		students = append(students, pool.groups[dept][pool.pointers[dept]:]...)
	}
	return students
}

// AllocateSemesterExam seats one student per seat, mixing at least two
// departments per room while more than one remains. Deterministic for a
// given seed
func AllocateSemesterExam(
	students []AllocStudent,
	rooms []AllocRoom,
	seed int64,
) ([]Allocation, []AllocStudent, AllocSummary) {
	rng := rand.New(rand.NewSource(seed))
	pool := newDeptPool(students, rng)

	var allocations []Allocation
	roomIdx := 0
	seatInRoom := 1
	roomDepts := make(map[string]bool)

	for roomIdx < len(rooms) {
		dept, ok := pool.pick(roomDepts, rng)
		if !ok {
			break
		}
		roomDepts[dept] = true
		student := pool.take(dept)
		room := rooms[roomIdx]

		allocations = append(allocations, Allocation{
			Student:    student.ID,
			RoomNumber: room.RoomNumber,
			SeatNumber: fmt.Sprintf("S-%d", seatInRoom),
			Floor:      room.Floor,
			Building:   room.Building,
			Department: student.Department,
		})
		seatInRoom++
		if seatInRoom > room.Capacity {
			roomIdx++
			seatInRoom = 1
			roomDepts = make(map[string]bool)
		}
	}

	roomsUsed := roomIdx
	if seatInRoom > 1 {
		roomsUsed++
	}
	return allocations, pool.remainder(), AllocSummary{
		TotalAllocated: len(allocations),
		RoomsUsed:      roomsUsed,
		Departments:    len(pool.departments),
	}
}

// AllocateInternalExam seats two students per bench (Left/Right), the
// bench mate always from a different department when one is available.
// Room capacity counts benches
func AllocateInternalExam(
	students []AllocStudent,
	rooms []AllocRoom,
	seed int64,
) ([]Allocation, []AllocStudent, AllocSummary) {
	rng := rand.New(rand.NewSource(seed))
	pool := newDeptPool(students, rng)

	var allocations []Allocation
	benches := 0
	roomIdx := 0
	benchInRoom := 1
	roomDepts := make(map[string]bool)

	for roomIdx < len(rooms) {
		dept, ok := pool.pick(roomDepts, rng)
		if !ok {
			break
		}
		roomDepts[dept] = true
		student := pool.take(dept)
		room := rooms[roomIdx]

		allocations = append(allocations, Allocation{
			Student:    student.ID,
			RoomNumber: room.RoomNumber,
			SeatNumber: fmt.Sprintf("B-%d-L", benchInRoom),
			Floor:      room.Floor,
			Building:   room.Building,
			Department: student.Department,
		})
		benches++

		// Bench mate from another department
		otherDepts := funct.Filter(pool.available(), func(other string) bool {
			return other != dept
		})
		if len(otherDepts) > 0 {
			deptMate := otherDepts[rng.Intn(len(otherDepts))]
			roomDepts[deptMate] = true
			mate := pool.take(deptMate)

			allocations = append(allocations, Allocation{
				Student:    mate.ID,
				RoomNumber: room.RoomNumber,
				SeatNumber: fmt.Sprintf("B-%d-R", benchInRoom),
				Floor:      room.Floor,
				Building:   room.Building,
				Department: mate.Department,
			})
		}

		benchInRoom++
		if benchInRoom > room.Capacity {
			roomIdx++
			benchInRoom = 1
			roomDepts = make(map[string]bool)
		}
	}

	roomsUsed := roomIdx
	if benchInRoom > 1 {
		roomsUsed++
	}
	return allocations, pool.remainder(), AllocSummary{
		TotalAllocated: len(allocations),
		RoomsUsed:      roomsUsed,
		Departments:    len(pool.departments),
		BenchesUsed:    benches,
	}
}
