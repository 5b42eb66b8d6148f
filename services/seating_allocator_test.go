package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func allocStudents(count int, department string) []AllocStudent {
	students := make([]AllocStudent, count)
	for i := range students {
		students[i] = AllocStudent{
			ID:         primitive.NewObjectID(),
			Department: department,
		}
	}
	return students
}

func TestAllocateSemesterExamFillsRooms(t *testing.T) {
	students := append(allocStudents(3, "CS"), allocStudents(3, "EC")...)
	rooms := []AllocRoom{
		{RoomNumber: "A-101", Capacity: 4, Floor: "1"},
		{RoomNumber: "A-102", Capacity: 4, Floor: "1"},
	}
	allocations, unallocated, summary := AllocateSemesterExam(students, rooms, 1)

	if len(allocations) != 6 {
		t.Fatalf("expected 6 allocations, got %d", len(allocations))
	}
	if len(unallocated) != 0 {
		t.Fatalf("expected no remainder, got %d", len(unallocated))
	}
	if summary.RoomsUsed != 2 {
		t.Errorf("expected 2 rooms used, got %d", summary.RoomsUsed)
	}
	// Seats must be unique per room
	seen := make(map[string]bool)
	for _, allocation := range allocations {
		key := allocation.RoomNumber + "/" + allocation.SeatNumber
		if seen[key] {
			t.Errorf("seat %s assigned twice", key)
		}
		seen[key] = true
	}
}

func TestAllocateSemesterExamOverflow(t *testing.T) {
	students := allocStudents(5, "CS")
	rooms := []AllocRoom{{RoomNumber: "A-101", Capacity: 3}}

	allocations, unallocated, _ := AllocateSemesterExam(students, rooms, 7)
	if len(allocations) != 3 {
		t.Fatalf("expected 3 allocations, got %d", len(allocations))
	}
	if len(unallocated) != 2 {
		t.Fatalf("expected 2 unallocated, got %d", len(unallocated))
	}
}

func TestAllocateSemesterExamDeterministic(t *testing.T) {
	students := append(allocStudents(4, "CS"), allocStudents(4, "ME")...)
	rooms := []AllocRoom{{RoomNumber: "A-101", Capacity: 10}}

	first, _, _ := AllocateSemesterExam(students, rooms, 42)
	second, _, _ := AllocateSemesterExam(students, rooms, 42)
	if len(first) != len(second) {
		t.Fatal("runs with the same seed differ in length")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("allocation %d differs between runs with the same seed", i)
		}
	}
}

func TestAllocateSemesterExamMixesDepartments(t *testing.T) {
	students := append(allocStudents(5, "CS"), allocStudents(5, "EC")...)
	rooms := []AllocRoom{{RoomNumber: "A-101", Capacity: 10}}

	allocations, _, _ := AllocateSemesterExam(students, rooms, 3)
	departments := make(map[string]bool)
	for _, allocation := range allocations {
		departments[allocation.Department] = true
	}
	if len(departments) < 2 {
		t.Error("room holds a single department while two were available")
	}
}

func TestAllocateInternalExamBenchMates(t *testing.T) {
	students := append(allocStudents(4, "CS"), allocStudents(4, "EC")...)
	rooms := []AllocRoom{{RoomNumber: "B-201", Capacity: 10}}

	allocations, unallocated, summary := AllocateInternalExam(students, rooms, 11)
	if len(allocations) != 8 {
		t.Fatalf("expected 8 allocations, got %d", len(allocations))
	}
	if len(unallocated) != 0 {
		t.Fatalf("expected no remainder, got %d", len(unallocated))
	}
	if summary.BenchesUsed != 4 {
		t.Errorf("expected 4 benches, got %d", summary.BenchesUsed)
	}
	// Bench mates must come from different departments while both remain
	byBench := make(map[string][]Allocation)
	for _, allocation := range allocations {
		bench := allocation.SeatNumber[:len(allocation.SeatNumber)-2]
		byBench[bench] = append(byBench[bench], allocation)
	}
	for bench, pair := range byBench {
		if len(pair) == 2 && pair[0].Department == pair[1].Department {
			t.Errorf("bench %s seats two students of %s", bench, pair[0].Department)
		}
	}
}

func TestAllocateInternalExamCapacityCountsBenches(t *testing.T) {
	students := allocStudents(6, "CS")
	rooms := []AllocRoom{{RoomNumber: "B-201", Capacity: 2}}

	// Single department, so benches hold one student each
	allocations, unallocated, _ := AllocateInternalExam(students, rooms, 5)
	if len(allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocations))
	}
	if len(unallocated) != 4 {
		t.Fatalf("expected 4 unallocated, got %d", len(unallocated))
	}
}
