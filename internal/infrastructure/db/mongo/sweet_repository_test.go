package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

const sweetsNS = "sweetshop.sweets"

func sweetDoc(id primitive.ObjectID, name string, qty int) bson.D {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "category", Value: "Gummy"},
		{Key: "price", Value: 1.5},
		{Key: "quantity", Value: qty},
		{Key: "created_at", Value: ts},
		{Key: "updated_at", Value: ts},
	}
}

func findAndModifyReply(doc bson.D) bson.D {
	if doc == nil {
		return bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}}
	}
	return bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: doc}}
}

func TestSweetRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := &domain.Sweet{Name: "Gummy Bear", Category: "Gummy", Price: 1.5, Quantity: 100}
		if err := repo.Create(context.Background(), s); err != nil {
			mt.Fatalf("Create returned error: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(s.ID); err != nil {
			mt.Fatalf("expected ObjectID hex, got %q", s.ID)
		}
	})
}

func TestSweetRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, sweetsNS, mtest.FirstBatch, sweetDoc(id, "Gummy Bear", 100)))

		got, err := repo.FindByID(context.Background(), id.Hex())
		if err != nil {
			mt.Fatalf("FindByID returned error: %v", err)
		}
		if got.ID != id.Hex() || got.Name != "Gummy Bear" || got.Quantity != 100 {
			mt.Fatalf("unexpected sweet: %+v", got)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, sweetsNS, mtest.FirstBatch))

		if _, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, domain.ErrSweetNotFound) {
			mt.Fatalf("expected ErrSweetNotFound, got %v", err)
		}
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)

		if _, err := repo.FindByID(context.Background(), "xyz"); !errors.Is(err, domain.ErrMalformedID) {
			mt.Fatalf("expected ErrMalformedID, got %v", err)
		}
		if ev := mt.GetStartedEvent(); ev != nil {
			mt.Fatalf("expected no command for malformed id, got %s", ev.CommandName)
		}
	})
}

func TestSweetRepository_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("builds filter", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, sweetsNS, mtest.FirstBatch,
			sweetDoc(primitive.NewObjectID(), "Gummy Bear", 3),
			sweetDoc(primitive.NewObjectID(), "Gummy Worm", 4),
		))

		min, max := 1.0, 2.0
		got, err := repo.List(context.Background(), ports.SweetFilter{Name: "gummy.", MinPrice: &min, MaxPrice: &max})
		if err != nil {
			mt.Fatalf("List returned error: %v", err)
		}
		if len(got) != 2 {
			mt.Fatalf("expected 2 sweets, got %d", len(got))
		}

		ev := mt.GetStartedEvent()
		if ev == nil || ev.CommandName != "find" {
			mt.Fatalf("expected find command, got %+v", ev)
		}
		pattern, opts := ev.Command.Lookup("filter", "name").Regex()
		if pattern != `gummy\.` || opts != "i" {
			mt.Fatalf("expected quoted case-insensitive regex, got /%s/%s", pattern, opts)
		}
		if v := ev.Command.Lookup("filter", "price", "$gte").Double(); v != 1.0 {
			mt.Fatalf("expected $gte 1.0, got %v", v)
		}
		if v := ev.Command.Lookup("filter", "price", "$lte").Double(); v != 2.0 {
			mt.Fatalf("expected $lte 2.0, got %v", v)
		}
	})

	mt.Run("empty", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, sweetsNS, mtest.FirstBatch))

		got, err := repo.List(context.Background(), ports.SweetFilter{})
		if err != nil {
			mt.Fatalf("List returned error: %v", err)
		}
		if got == nil || len(got) != 0 {
			mt.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})
}

func TestSweetRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("partial set", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(findAndModifyReply(sweetDoc(id, "Sour Bear", 100)))

		name := "Sour Bear"
		got, err := repo.Update(context.Background(), id.Hex(), domain.SweetPatch{Name: &name})
		if err != nil {
			mt.Fatalf("Update returned error: %v", err)
		}
		if got.Name != "Sour Bear" {
			mt.Fatalf("unexpected sweet: %+v", got)
		}

		ev := mt.GetStartedEvent()
		set := ev.Command.Lookup("update", "$set").Document()
		if _, err := set.LookupErr("price"); err == nil {
			mt.Fatalf("price must not be set by a name-only patch")
		}
		if v := set.Lookup("name").StringValue(); v != "Sour Bear" {
			mt.Fatalf("expected name in $set, got %q", v)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		mt.AddMockResponses(findAndModifyReply(nil))

		price := 2.0
		if _, err := repo.Update(context.Background(), primitive.NewObjectID().Hex(), domain.SweetPatch{Price: &price}); !errors.Is(err, domain.ErrSweetNotFound) {
			mt.Fatalf("expected ErrSweetNotFound, got %v", err)
		}
	})
}

func TestSweetRepository_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := repo.Delete(context.Background(), primitive.NewObjectID().Hex()); err != nil {
			mt.Fatalf("Delete returned error: %v", err)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := repo.Delete(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, domain.ErrSweetNotFound) {
			mt.Fatalf("expected ErrSweetNotFound, got %v", err)
		}
	})
}

func TestSweetRepository_DecrementQuantity(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("conditional update", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(findAndModifyReply(sweetDoc(id, "Gummy Bear", 70)))

		got, err := repo.DecrementQuantity(context.Background(), id.Hex(), 30)
		if err != nil {
			mt.Fatalf("DecrementQuantity returned error: %v", err)
		}
		if got.Quantity != 70 {
			mt.Fatalf("expected quantity 70, got %d", got.Quantity)
		}

		ev := mt.GetStartedEvent()
		if ev.CommandName != "findAndModify" {
			mt.Fatalf("expected a single findAndModify, got %s", ev.CommandName)
		}
		if v := ev.Command.Lookup("query", "quantity", "$gte").AsInt64(); v != 30 {
			mt.Fatalf("expected quantity guard $gte 30, got %d", v)
		}
		if v := ev.Command.Lookup("update", "$inc", "quantity").AsInt64(); v != -30 {
			mt.Fatalf("expected $inc -30, got %d", v)
		}
		if next := mt.GetStartedEvent(); next != nil {
			mt.Fatalf("expected no follow-up command, got %s", next.CommandName)
		}
	})

	mt.Run("insufficient stock", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			findAndModifyReply(nil),
			mtest.CreateCursorResponse(0, sweetsNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: id}}),
		)

		if _, err := repo.DecrementQuantity(context.Background(), id.Hex(), 81); !errors.Is(err, domain.ErrInsufficientStock) {
			mt.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		mt.AddMockResponses(
			findAndModifyReply(nil),
			mtest.CreateCursorResponse(0, sweetsNS, mtest.FirstBatch),
		)

		if _, err := repo.DecrementQuantity(context.Background(), primitive.NewObjectID().Hex(), 1); !errors.Is(err, domain.ErrSweetNotFound) {
			mt.Fatalf("expected ErrSweetNotFound, got %v", err)
		}
	})
}

func TestSweetRepository_IncrementQuantity(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("increments", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(findAndModifyReply(sweetDoc(id, "Gummy Bear", 80)))

		got, err := repo.IncrementQuantity(context.Background(), id.Hex(), 10)
		if err != nil {
			mt.Fatalf("IncrementQuantity returned error: %v", err)
		}
		if got.Quantity != 80 {
			mt.Fatalf("expected quantity 80, got %d", got.Quantity)
		}
		ev := mt.GetStartedEvent()
		if _, err := ev.Command.LookupErr("query", "quantity"); err == nil {
			mt.Fatalf("restock must not carry a quantity guard")
		}
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewSweetRepository(mt.DB)
		if _, err := repo.IncrementQuantity(context.Background(), "42", 1); !errors.Is(err, domain.ErrMalformedID) {
			mt.Fatalf("expected ErrMalformedID, got %v", err)
		}
	})
}
