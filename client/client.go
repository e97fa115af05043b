package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

type Client struct {
	http.Client
	Addr string
}

// APIError is a non-200 answer from the service.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("articles api: %d %s", e.StatusCode, e.Message)
}

func (c *Client) Ping() (string, error) {
	req, err := http.NewRequest("GET", c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

// CreateArticle posts in and returns the new article id.
func (c *Client) CreateArticle(in model.ArticleInput) (string, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return "", err
	}

	var created model.Created
	if err := c.call(http.MethodPost, "/article", bytes.NewReader(body), &created); err != nil {
		return "", err
	}

	return created.ArticleID, nil
}

func (c *Client) GetArticle(id string) (*model.Article, error) {
	a := &model.Article{}
	if err := c.call(http.MethodGet, "/article?"+url.Values{"id": {id}}.Encode(), nil, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (c *Client) RandomArticles() ([]*model.Article, error) {
	var articles []*model.Article
	if err := c.call(http.MethodGet, "/article/random", nil, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

func (c *Client) call(method, path string, body io.Reader, v interface{}) error {
	req, err := http.NewRequest(method, c.Addr+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)

		return apiErr
	}

	return json.Unmarshal(data, v)
}
