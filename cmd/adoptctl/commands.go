package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spec-kit/adoption-client/internal/adoption"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/resource"
)

var errMissingID = errors.New("an id argument is required")

func login(ctx context.Context, client *adoption.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	remember := fs.Bool("remember", false, "keep the session after exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := client.Session.Login(ctx, domain.LoginRequest{Email: *email, Password: *password}, *remember)
	if err != nil {
		return err
	}
	return printJSON(out, user)
}

func animals(ctx context.Context, client *adoption.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("animals: expected list, get, create or delete")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("animals list", flag.ContinueOnError)
		species := fs.String("species", "", "cachorro, gato, coelho, hamster or outro")
		size := fs.String("size", "", "pequeno, médio or grande")
		status := fs.String("status", "", "available, adopted or reserved")
		shelter := fs.String("shelter", "", "shelter id")
		search := fs.String("search", "", "free text")
		page := fs.Int("page", 0, "page number")
		limit := fs.Int("limit", 0, "page size")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		list, err := client.Animals.List(ctx, resource.AnimalQuery{
			Species:   domain.Species(*species),
			Size:      domain.Size(*size),
			Status:    domain.AnimalStatus(*status),
			ShelterID: *shelter,
			Search:    *search,
			Page:      *page,
			Limit:     *limit,
		})
		if err != nil {
			return err
		}
		return printJSON(out, list)
	case "get":
		if len(args) < 2 {
			return errMissingID
		}
		animal, err := client.Animals.Get(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(out, animal)
	case "create":
		fs := flag.NewFlagSet("animals create", flag.ContinueOnError)
		file := fs.String("file", "-", "JSON animal definition, - for stdin")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		var in domain.AnimalInput
		if err := readJSON(*file, &in); err != nil {
			return err
		}
		animal, err := client.Animals.Create(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(out, animal)
	case "delete":
		if len(args) < 2 {
			return errMissingID
		}
		return client.Animals.Delete(ctx, args[1])
	default:
		return fmt.Errorf("animals: unknown subcommand %q", args[0])
	}
}

func shelters(ctx context.Context, client *adoption.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("shelters: expected list or get")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("shelters list", flag.ContinueOnError)
		city := fs.String("city", "", "city")
		state := fs.String("state", "", "state abbreviation")
		search := fs.String("search", "", "free text")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		list, err := client.Shelters.List(ctx, resource.ShelterQuery{City: *city, State: *state, Search: *search})
		if err != nil {
			return err
		}
		return printJSON(out, list)
	case "get":
		if len(args) < 2 {
			return errMissingID
		}
		shelter, err := client.Shelters.Get(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(out, shelter)
	default:
		return fmt.Errorf("shelters: unknown subcommand %q", args[0])
	}
}

func adopt(ctx context.Context, client *adoption.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("adopt", flag.ContinueOnError)
	animal := fs.String("animal", "", "animal id")
	message := fs.String("message", "", "note for the shelter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req, err := client.Adoptions.Create(ctx, domain.AdoptionInput{AnimalID: *animal, Message: *message})
	if err != nil {
		return err
	}
	return printJSON(out, req)
}

func contact(ctx context.Context, client *adoption.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	var in domain.ContactInput
	fs.StringVar(&in.Name, "name", "", "your name")
	fs.StringVar(&in.Email, "email", "", "reply address")
	fs.StringVar(&in.Phone, "phone", "", "optional phone, (11) 91234-5678")
	fs.StringVar(&in.Subject, "subject", "", "subject")
	fs.StringVar(&in.Message, "message", "", "message body")
	if err := fs.Parse(args); err != nil {
		return err
	}
	msg, err := client.Contact.Send(ctx, in)
	if err != nil {
		return err
	}
	return printJSON(out, msg)
}

func readJSON(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
