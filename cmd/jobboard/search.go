package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/search"
	"github.com/jonathan/jobboard/internal/seed"
	"github.com/jonathan/jobboard/internal/store"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter and sort listings",
	Long: `Apply the same filters as GET /vacancies and GET /resumes to listings read
from a JSON file, the bundled sample dataset or the configured store.`,
	RunE: runSearch,
}

var (
	searchKind     string
	searchFile     string
	searchSample   bool
	searchQuery    string
	searchCategory string
	searchLocation string
	searchSkills   []string
	searchKeywords []string
	searchRemote   bool
	searchVerified bool
	searchSort     string
	searchLimit    int
	searchParams   []string
)

func init() {
	searchCmd.Flags().StringVar(&searchKind, "kind", "vacancies", "Collection to search: vacancies or resumes")
	searchCmd.Flags().StringVarP(&searchFile, "file", "f", "", "JSON array of listings to search instead of the store")
	searchCmd.Flags().BoolVar(&searchSample, "sample", false, "Search the bundled sample dataset")
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Free-text query")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Category")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "Location substring")
	searchCmd.Flags().StringSliceVar(&searchSkills, "skills", nil, "Required skills (all must match)")
	searchCmd.Flags().StringSliceVar(&searchKeywords, "keywords", nil, "Keywords (any may match)")
	searchCmd.Flags().BoolVar(&searchRemote, "remote", false, "Include remote listings regardless of location")
	searchCmd.Flags().BoolVar(&searchVerified, "verified", false, "Only verified listings")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "newest, oldest, salary-high, salary-low or relevance")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results")
	searchCmd.Flags().StringArrayVar(&searchParams, "param", nil, "Any other filter as key=value, using the API query names")

	rootCmd.AddCommand(searchCmd)
}

// searchValues maps the command flags onto API query parameters.
func searchValues(cmd *cobra.Command) (url.Values, error) {
	v := url.Values{}
	for _, p := range searchParams {
		key, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", p)
		}
		v.Add(strings.TrimSpace(key), value)
	}

	flags := cmd.Flags()
	set := func(name, key, value string) {
		if flags.Changed(name) {
			v.Set(key, value)
		}
	}
	set("query", "q", searchQuery)
	set("category", "category", searchCategory)
	set("location", "location", searchLocation)
	set("skills", "skills", strings.Join(searchSkills, ","))
	set("keywords", "keywords", strings.Join(searchKeywords, ","))
	set("remote", "remote", strconv.FormatBool(searchRemote))
	set("verified", "verified", strconv.FormatBool(searchVerified))
	set("sort", "sort", searchSort)
	set("limit", "limit", strconv.Itoa(searchLimit))
	return v, nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var collection string
	switch searchKind {
	case store.CollectionVacancies, store.CollectionResumes:
		collection = searchKind
	default:
		return fmt.Errorf("invalid --kind %q, expected vacancies or resumes", searchKind)
	}

	values, err := searchValues(cmd)
	if err != nil {
		return err
	}
	filter, err := search.FromValues(values)
	if err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}

	var items []types.Listing
	switch {
	case searchFile != "":
		data, err := os.ReadFile(searchFile)
		if err != nil {
			return fmt.Errorf("failed to read listings file: %w", err)
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to parse listings file: %w", err)
		}
	case searchSample:
		d, err := seed.Sample()
		if err != nil {
			return err
		}
		items = d.Vacancies
		if collection == store.CollectionResumes {
			items = d.Resumes
		}
	default:
		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		if items, err = store.NewCollection[types.Listing](st, collection).All(cmd.Context()); err != nil {
			return err
		}
	}

	result := search.NewEngine(cfg.Now()).Apply(items, filter)
	return render(cmd, result, func(p *observability.Printer) {
		p.PrintListings(strings.ToUpper(collection), result)
	})
}
