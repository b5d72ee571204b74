package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// POST /customers
func (s *Server) createCustomer(c echo.Context) error {
	var req customerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := s.store.CreateCustomer(c.Request().Context(), req.toCustomer(uuid.Nil))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// GET /customers
func (s *Server) listCustomers(c echo.Context) error {
	customers, err := s.store.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, toCustomerResponse(customer))
	}

	return c.JSON(http.StatusOK, out)
}

// GET /customers/:id
func (s *Server) getCustomer(c echo.Context) error {
	id, err := idParam(c, "customer")
	if err != nil {
		return err
	}

	customer, err := s.store.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}

	rentals, err := s.store.RentalsForCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}

	checkedOut := 0
	for _, rental := range rentals {
		if rental.IsCheckedOut {
			checkedOut++
		}
	}

	out := toCustomerResponse(customer)
	out.VideosCheckedOutCount = &checkedOut

	return c.JSON(http.StatusOK, out)
}

// PUT /customers/:id
func (s *Server) updateCustomer(c echo.Context) error {
	id, err := idParam(c, "customer")
	if err != nil {
		return err
	}

	var req customerRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	if err = s.store.UpdateCustomer(c.Request().Context(), req.toCustomer(id)); err != nil {
		return err
	}

	customer, err := s.store.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// DELETE /customers/:id
func (s *Server) deleteCustomer(c echo.Context) error {
	id, err := idParam(c, "customer")
	if err != nil {
		return err
	}

	if err = s.store.DeleteCustomer(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, idResponse{ID: id})
}

// GET /customers/:id/rentals
func (s *Server) customerRentals(c echo.Context) error {
	id, err := idParam(c, "customer")
	if err != nil {
		return err
	}

	if _, err = s.store.GetCustomer(c.Request().Context(), id); err != nil {
		return err
	}

	rentals, err := s.store.RentalsForCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRentalResponses(rentals))
}
