package headhunter

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

const (
	SearchPath = "/vacancies"
)

type SearchParams struct {
	Text string `yaml:"text" mapstructure:"text"`
	// hhparam is custom tag for reflect. Please see below.
	Areas       []int    `hhparam:"area" mapstructure:"areas"`
	OrderBy     string   `yaml:"order_by" mapstructure:"order_by"`
	Employer    uint     `yaml:"employer_id" mapstructure:"employer_id"`
	SearchField string   `yaml:"search_field" mapstructure:"search_field"`
	Schedules   []string `hhparam:"schedule" mapstructure:"schedules"`
	PerPage     string   `yaml:"per_page" mapstructure:"per_page"`
	Experience  string   `yaml:"experience" mapstructure:"experience"`
	Period      uint     `yaml:"period" mapstructure:"period"`
	// Limit caps the number of vacancies kept from the search. Not sent to the API.
	Limit int `hhparam:"-" mapstructure:"limit"`
}

func (c *Client) search(params *SearchParams) (*Vacancies, error) {
	var vacancies []*Vacancy

	// Set per_page max as possible. It should be faster.
	if params.PerPage == "" {
		params.PerPage = perPage
	}

	q := buildParams(params)
	apiURLSearch := fmt.Sprintf("%s%s", c.APIURL, SearchPath)

	items, err := c.GetItems(apiURLSearch, q)
	if err != nil {
		return nil, err
	}

	if err := decode(items, &vacancies); err != nil {
		return nil, fmt.Errorf("decoding vacancies: %w", err)
	}

	if params.Limit > 0 && len(vacancies) > params.Limit {
		vacancies = vacancies[:params.Limit]
	}

	return &Vacancies{
		Items: vacancies,
	}, nil
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	value := reflect.ValueOf(params).Elem()
	for _, field := range reflect.VisibleFields(value.Type()) {
		// Our custom tag is using here.
		key := field.Tag.Get("hhparam")
		if key == "-" {
			continue
		}
		if key == "" {
			// Failover to default tag if our tag do not exist.
			key = field.Tag.Get("yaml")
		}

		switch v := value.FieldByIndex(field.Index).Interface().(type) {
		case []int:
			for _, item := range v {
				q.Add(key, strconv.Itoa(item))
			}
		case []string:
			for _, item := range v {
				q.Add(key, item)
			}
		default:
			s := fmt.Sprintf("%v", v)
			if s != "" && s != "0" {
				q.Set(key, s)
			}
		}
	}

	return q
}
